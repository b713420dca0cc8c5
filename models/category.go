package models

// Category groups products for catalog filtering. Categories are seeded
// out of band and read-only here; products reference them by ID.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex;not null"`
	Name string `gorm:"not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
