package models

import (
	"github.com/shopspring/decimal"
)

// Variant is one sellable size/color combination of a product.
// Quantity is the live stock level and is the only field checkout mutates.
// A zero PriceOverride means "no override".
type Variant struct {
	ID                uint    `gorm:"primaryKey"`
	ProductID         uint    `gorm:"not null;index"`
	Product           Product `gorm:"foreignKey:ProductID"`
	Size              string
	Color             string
	Quantity          int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:0"`
	PriceOverride     decimal.Decimal `gorm:"type:decimal(10,2)"`
}

func (v *Variant) TableName() string {
	return "variants"
}

// defaultLowStockThreshold applies when a variant has no threshold configured.
const defaultLowStockThreshold = 5

// StockThreshold returns the configured low-stock threshold, or the default
// when none is set.
func (v *Variant) StockThreshold() int {
	if v.LowStockThreshold > 0 {
		return v.LowStockThreshold
	}
	return defaultLowStockThreshold
}

// EffectivePrice resolves the variant's unit price, falling back to the
// product's selling price when no override is set. Requires Product to be
// loaded.
func (v *Variant) EffectivePrice() decimal.Decimal {
	if !v.PriceOverride.IsZero() {
		return v.PriceOverride
	}
	return v.Product.SellingPrice
}
