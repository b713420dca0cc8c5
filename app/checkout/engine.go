package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jamesabinibi/trybe-pos/models"
)

// CartLine is one requested item in a checkout.
type CartLine struct {
	VariantID     uint
	Quantity      int
	PriceOverride *decimal.Decimal
}

// Receipt identifies a committed sale.
type Receipt struct {
	SaleID        uint
	InvoiceNumber string
}

// LowStockChecker is invoked after a successful checkout. Implementations
// must swallow their own failures; a missed alert never fails a sale.
type LowStockChecker interface {
	CheckLowStock(ctx context.Context, userID uint)
}

// ErrEmptyCart is returned when a checkout is requested with no items.
var ErrEmptyCart = errors.New("no items in sale")

// ErrInvalidQuantity is returned when a cart line's quantity is not a
// positive integer.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// maxInvoiceAttempts bounds the retry loop for invoice-number collisions.
const maxInvoiceAttempts = 3

// Engine turns a cart into a persisted sale while decrementing per-variant
// stock and computing per-line profit. Every attempt runs as a single store
// transaction: all writes commit together or none do.
type Engine struct {
	store  models.CheckoutStore
	alerts LowStockChecker
	now    func() time.Time
}

// NewEngine returns a checkout engine over store. alerts may be nil, in
// which case no low-stock check is scheduled after checkout.
func NewEngine(store models.CheckoutStore, alerts LowStockChecker) *Engine {
	return &Engine{
		store:  store,
		alerts: alerts,
		now:    time.Now,
	}
}

// Process validates the cart, then atomically writes the sale, its line
// items and the stock decrements. On success it schedules a low-stock check
// and returns the receipt. An invoice-number collision is retried with a
// fresh number before being surfaced.
func (e *Engine) Process(ctx context.Context, cart []CartLine, paymentMethod string, staffID *uint) (Receipt, error) {
	if len(cart) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	for _, line := range cart {
		if line.Quantity <= 0 {
			return Receipt{}, ErrInvalidQuantity
		}
	}

	var sale *models.Sale
	var err error
	for attempt := 0; attempt < maxInvoiceAttempts; attempt++ {
		sale, err = e.attempt(ctx, cart, paymentMethod, staffID)
		if !errors.Is(err, models.ErrDuplicateInvoice) {
			break
		}
	}
	if err != nil {
		return Receipt{}, err
	}

	if e.alerts != nil {
		var userID uint
		if staffID != nil {
			userID = *staffID
		}
		go e.alerts.CheckLowStock(context.WithoutCancel(ctx), userID)
	}

	return Receipt{SaleID: sale.ID, InvoiceNumber: sale.InvoiceNumber}, nil
}

// attempt runs one full checkout transaction under a freshly generated
// invoice number.
func (e *Engine) attempt(ctx context.Context, cart []CartLine, paymentMethod string, staffID *uint) (*models.Sale, error) {
	sale := &models.Sale{
		InvoiceNumber: e.invoiceNumber(),
		PaymentMethod: paymentMethod,
		StaffID:       staffID,
	}

	err := e.store.Transact(ctx, func(tx models.CheckoutStore) error {
		totalAmount := decimal.Zero
		totalProfit := decimal.Zero

		for _, line := range cart {
			variant, err := tx.GetVariantWithProduct(ctx, line.VariantID)
			if err != nil {
				return err
			}

			// Price precedence: line override > variant override >
			// product selling price.
			unitPrice := variant.EffectivePrice()
			if line.PriceOverride != nil {
				unitPrice = *line.PriceOverride
			}

			qty := decimal.NewFromInt(int64(line.Quantity))
			lineProfit := unitPrice.Sub(variant.Product.CostPrice).Mul(qty)

			if err := tx.DecrementStock(ctx, variant.ID, line.Quantity); err != nil {
				return err
			}

			totalAmount = totalAmount.Add(unitPrice.Mul(qty))
			totalProfit = totalProfit.Add(lineProfit)
			sale.Items = append(sale.Items, models.SaleItem{
				VariantID:    variant.ID,
				Quantity:     line.Quantity,
				SellingPrice: unitPrice,
				CostPrice:    variant.Product.CostPrice,
				Profit:       lineProfit,
			})
		}

		sale.TotalAmount = totalAmount
		sale.TotalProfit = totalProfit
		return tx.CreateSale(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ReverseSale restores the stock a sale consumed and removes the sale and
// its line items, all in one transaction.
func (e *Engine) ReverseSale(ctx context.Context, saleID uint) error {
	return e.store.Transact(ctx, func(tx models.CheckoutStore) error {
		sale, err := tx.GetSaleWithItems(ctx, saleID)
		if err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := tx.IncrementStock(ctx, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}
		return tx.DeleteSale(ctx, sale)
	})
}

func (e *Engine) invoiceNumber() string {
	return fmt.Sprintf("INV-%d", e.now().UnixNano())
}
