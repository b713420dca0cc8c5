package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrVariantNotFound is returned when a referenced variant does not exist.
var ErrVariantNotFound = errors.New("variant not found")

// ErrInsufficientStock is returned when a decrement would drive a variant's
// quantity negative. No write happens in that case.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrDuplicateInvoice is returned when a sale's invoice number collides with
// an existing one.
var ErrDuplicateInvoice = errors.New("duplicate invoice number")

// ErrSaleNotFound is returned when a sale is not found.
var ErrSaleNotFound = errors.New("sale not found")

// SalesRepository persists sales and the stock mutations that go with them.
// It implements CheckoutStore; Transact hands out a copy of the repository
// bound to a single database transaction.
type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{
		db: db,
	}
}

func (r *SalesRepository) Transact(ctx context.Context, fn func(CheckoutStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SalesRepository{db: tx})
	})
}

func (r *SalesRepository) GetVariantWithProduct(ctx context.Context, id uint) (*Variant, error) {
	var variant Variant
	if err := r.db.WithContext(ctx).
		Preload("Product").
		First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// DecrementStock subtracts amount from a variant's quantity. The guard lives
// in the UPDATE itself, so two concurrent checkouts against the same variant
// cannot both succeed past the last unit.
func (r *SalesRepository) DecrementStock(ctx context.Context, variantID uint, amount int) error {
	res := r.db.WithContext(ctx).
		Model(&Variant{}).
		Where("id = ? AND quantity >= ?", variantID, amount).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means the guard failed or the variant vanished.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&Variant{}).
			Where("id = ?", variantID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrVariantNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *SalesRepository) IncrementStock(ctx context.Context, variantID uint, amount int) error {
	res := r.db.WithContext(ctx).
		Model(&Variant{}).
		Where("id = ?", variantID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

// CreateSale inserts the sale together with its line items.
func (r *SalesRepository) CreateSale(ctx context.Context, sale *Sale) error {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateInvoice
		}
		return err
	}
	return nil
}

func (r *SalesRepository) GetSaleWithItems(ctx context.Context, id uint) (*Sale, error) {
	var sale Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// DeleteSale removes the sale and the line items it owns. A zero-row sale
// delete means another reversal got there first; reporting it as not-found
// makes the caller's transaction roll back instead of committing its stock
// increments a second time.
func (r *SalesRepository) DeleteSale(ctx context.Context, sale *Sale) error {
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", sale.ID).
		Delete(&SaleItem{}).Error; err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(sale)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

// ListSales returns a page of sales, newest first, with line items loaded.
func (r *SalesRepository) ListSales(ctx context.Context, offset, limit int) ([]Sale, int64, error) {
	var sales []Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&Sale{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}
