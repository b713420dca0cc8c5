package models

import "time"

// Notification is a low-stock alert recorded for a user.
// Message text doubles as the dedup key among that user's unread alerts.
type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Message   string `gorm:"not null"`
	Read      bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (n *Notification) TableName() string {
	return "notifications"
}
