package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the ledger record for one completed checkout.
type Sale struct {
	ID            uint            `gorm:"primaryKey"`
	InvoiceNumber string          `gorm:"uniqueIndex;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalProfit   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string
	StaffID       *uint
	Staff         *Staff `gorm:"foreignKey:StaffID"`
	CreatedAt     time.Time
	Items         []SaleItem `gorm:"foreignKey:SaleID"`
}

func (s *Sale) TableName() string {
	return "sales"
}

// SaleItem snapshots the prices in effect when the sale was made.
// It is immutable once created and never reads back through the variant.
type SaleItem struct {
	ID           uint            `gorm:"primaryKey"`
	SaleID       uint            `gorm:"not null;index"`
	VariantID    uint            `gorm:"not null;index"`
	Quantity     int             `gorm:"not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Profit       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (i *SaleItem) TableName() string {
	return "sale_items"
}
