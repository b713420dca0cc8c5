package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jamesabinibi/trybe-pos/models"
)

// SaleProcessor is the slice of engine behavior the handler consumes.
type SaleProcessor interface {
	Process(ctx context.Context, cart []CartLine, paymentMethod string, staffID *uint) (Receipt, error)
}

type CheckoutHandler struct {
	engine SaleProcessor
}

func NewCheckoutHandler(e SaleProcessor) *CheckoutHandler {
	return &CheckoutHandler{engine: e}
}

type checkoutRequest struct {
	Items []struct {
		VariantID     uint     `json:"variant_id"`
		Quantity      int      `json:"quantity"`
		PriceOverride *float64 `json:"price_override"`
	} `json:"items"`
	PaymentMethod string `json:"payment_method"`
	StaffID       *uint  `json:"staff_id"`
}

type checkoutResponse struct {
	SaleID        uint   `json:"saleId"`
	InvoiceNumber string `json:"invoice_number"`
}

func (h *CheckoutHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	cart := make([]CartLine, len(input.Items))
	for i, item := range input.Items {
		line := CartLine{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		}
		if item.PriceOverride != nil {
			override := decimal.NewFromFloat(*item.PriceOverride)
			line.PriceOverride = &override
		}
		cart[i] = line
	}

	receipt, err := h.engine.Process(r.Context(), cart, input.PaymentMethod, input.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "No items in sale")
		case errors.Is(err, ErrInvalidQuantity),
			errors.Is(err, models.ErrVariantNotFound),
			errors.Is(err, models.ErrInsufficientStock):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("checkout failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(checkoutResponse{
		SaleID:        receipt.SaleID,
		InvoiceNumber: receipt.InvoiceNumber,
	}); err != nil {
		slog.Error("failed to encode checkout response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
