package models

import (
	"context"

	"gorm.io/gorm"
)

type NotificationsRepository struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *NotificationsRepository {
	return &NotificationsRepository{
		db: db,
	}
}

// ListVariantsWithProducts loads every variant with its product. The
// low-stock filtering happens in the notifier, not here.
func (r *NotificationsRepository) ListVariantsWithProducts(ctx context.Context) ([]Variant, error) {
	var variants []Variant
	if err := r.db.WithContext(ctx).Preload("Product").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *NotificationsRepository) ListUnread(ctx context.Context, userID uint) ([]Notification, error) {
	var notifications []Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationsRepository) CreateNotifications(ctx context.Context, notifications []Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notifications).Error
}
