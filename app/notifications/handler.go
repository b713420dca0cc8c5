package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jamesabinibi/trybe-pos/models"
)

// AlertSource is the slice of notifier behavior the handler consumes.
type AlertSource interface {
	CheckLowStock(ctx context.Context, userID uint)
	Unread(ctx context.Context, userID uint) ([]models.Notification, error)
}

type NotificationsHandler struct {
	notifier AlertSource
}

func NewNotificationsHandler(n AlertSource) *NotificationsHandler {
	return &NotificationsHandler{notifier: n}
}

type Notification struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleGet refreshes low-stock alerts for the user, then returns the
// unread set.
func (h *NotificationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	var userID uint
	if uStr := r.URL.Query().Get("user_id"); uStr != "" {
		u, err := strconv.ParseUint(uStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user_id")
			return
		}
		userID = uint(u)
	}

	h.notifier.CheckLowStock(r.Context(), userID)

	unread, err := h.notifier.Unread(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	response := make([]Notification, len(unread))
	for i, n := range unread {
		response[i] = Notification{
			ID:        n.ID,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode notifications", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
