package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Pricing lives here; per-variant overrides live on Variant.
type Product struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"not null"`
	CategoryID   uint            `gorm:"not null"`
	Category     Category        `gorm:"foreignKey:CategoryID"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Supplier     string
	CreatedAt    time.Time
	Variants     []Variant `gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "products"
}
