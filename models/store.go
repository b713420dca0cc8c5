package models

import "context"

// CatalogStore is the slice of catalog behavior checkout relies on.
type CatalogStore interface {
	GetVariantWithProduct(ctx context.Context, id uint) (*Variant, error)
	DecrementStock(ctx context.Context, variantID uint, amount int) error
	IncrementStock(ctx context.Context, variantID uint, amount int) error
}

// LedgerStore is the sale side of a checkout transaction.
type LedgerStore interface {
	CreateSale(ctx context.Context, sale *Sale) error
	GetSaleWithItems(ctx context.Context, id uint) (*Sale, error)
	DeleteSale(ctx context.Context, sale *Sale) error
}

// CheckoutStore groups catalog and ledger operations behind one transaction
// scope. Transact invokes fn with a store whose operations all join a single
// atomic unit; an error from fn rolls the whole unit back.
//
// Satisfied by SalesRepository and by in-memory fakes in tests.
type CheckoutStore interface {
	CatalogStore
	LedgerStore
	Transact(ctx context.Context, fn func(CheckoutStore) error) error
}
