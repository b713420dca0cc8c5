package models

// Staff identifies who recorded a sale. Account handling lives elsewhere;
// this is only the referent for Sale.StaffID and notification ownership.
type Staff struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (s *Staff) TableName() string {
	return "staff"
}
