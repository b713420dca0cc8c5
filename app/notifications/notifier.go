package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jamesabinibi/trybe-pos/models"
)

// Store is the persistence the notifier needs.
type Store interface {
	ListVariantsWithProducts(ctx context.Context) ([]models.Variant, error)
	ListUnread(ctx context.Context, userID uint) ([]models.Notification, error)
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
}

// Notifier raises low-stock alerts. It is best-effort by contract: every
// failure is logged and swallowed so a missed alert can never fail a
// checkout.
type Notifier struct {
	store Store
}

func NewNotifier(store Store) *Notifier {
	return &Notifier{store: store}
}

// CheckLowStock scans the catalog for variants under their threshold and
// records one unread alert per distinct message for userID. Messages the
// user already has unread are not duplicated.
func (n *Notifier) CheckLowStock(ctx context.Context, userID uint) {
	if err := n.checkLowStock(ctx, userID); err != nil {
		slog.Warn("low stock check failed", "user_id", userID, "error", err)
	}
}

func (n *Notifier) checkLowStock(ctx context.Context, userID uint) error {
	variants, err := n.store.ListVariantsWithProducts(ctx)
	if err != nil {
		return err
	}

	unread, err := n.store.ListUnread(ctx, userID)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(unread))
	for _, u := range unread {
		seen[u.Message] = true
	}

	var fresh []models.Notification
	for _, v := range variants {
		if v.Quantity >= v.StockThreshold() {
			continue
		}
		message := lowStockMessage(&v)
		if seen[message] {
			continue
		}
		seen[message] = true
		fresh = append(fresh, models.Notification{
			UserID:  userID,
			Message: message,
		})
	}

	return n.store.CreateNotifications(ctx, fresh)
}

// Unread returns the user's pending alerts.
func (n *Notifier) Unread(ctx context.Context, userID uint) ([]models.Notification, error) {
	return n.store.ListUnread(ctx, userID)
}

func lowStockMessage(v *models.Variant) string {
	return fmt.Sprintf("Low stock: %s (%s/%s) has %d left", v.Product.Name, v.Size, v.Color, v.Quantity)
}
