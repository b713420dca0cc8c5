package sales

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jamesabinibi/trybe-pos/models"
)

// SaleProvider reads the ledger.
type SaleProvider interface {
	ListSales(ctx context.Context, offset, limit int) ([]models.Sale, int64, error)
	GetSaleWithItems(ctx context.Context, id uint) (*models.Sale, error)
}

// SaleReverser undoes a committed sale, restoring the stock it consumed.
type SaleReverser interface {
	ReverseSale(ctx context.Context, saleID uint) error
}

type SalesHandler struct {
	repo     SaleProvider
	reverser SaleReverser
}

func NewSalesHandler(repo SaleProvider, reverser SaleReverser) *SalesHandler {
	return &SalesHandler{
		repo:     repo,
		reverser: reverser,
	}
}

type SaleItem struct {
	VariantID    uint    `json:"variant_id"`
	Quantity     int     `json:"quantity"`
	SellingPrice float64 `json:"selling_price"`
	CostPrice    float64 `json:"cost_price"`
	Profit       float64 `json:"profit"`
}

type Sale struct {
	ID            uint       `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	TotalAmount   float64    `json:"total_amount"`
	TotalProfit   float64    `json:"total_profit"`
	PaymentMethod string     `json:"payment_method"`
	StaffID       *uint      `json:"staff_id"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []SaleItem `json:"items"`
}

type ListResponse struct {
	Total int    `json:"total"`
	Sales []Sale `json:"sales"`
}

func (h *SalesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 20

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	res, total, err := h.repo.ListSales(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve sales")
		return
	}

	sales := make([]Sale, len(res))
	for i, s := range res {
		sales[i] = mapSale(&s)
	}

	w.Header().Set("Content-Type", "application/json")
	response := ListResponse{
		Total: int(total),
		Sales: sales,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode sales list", "error", err)
	}
}

func (h *SalesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sale id")
		return
	}

	sale, err := h.repo.GetSaleWithItems(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrSaleNotFound) {
			writeError(w, http.StatusNotFound, "Sale not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to retrieve sale")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(mapSale(sale)); err != nil {
		slog.Error("failed to encode sale", "error", err)
	}
}

// HandleDelete reverses a sale: restores stock for every line item, then
// removes the sale and its items.
func (h *SalesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sale id")
		return
	}

	if err := h.reverser.ReverseSale(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrSaleNotFound) {
			writeError(w, http.StatusNotFound, "Sale not found")
			return
		}
		slog.Error("sale reversal failed", "sale_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to reverse sale")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	return uint(id), err
}

func mapSale(s *models.Sale) Sale {
	items := make([]SaleItem, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItem{
			VariantID:    item.VariantID,
			Quantity:     item.Quantity,
			SellingPrice: item.SellingPrice.InexactFloat64(),
			CostPrice:    item.CostPrice.InexactFloat64(),
			Profit:       item.Profit.InexactFloat64(),
		}
	}
	return Sale{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		TotalAmount:   s.TotalAmount.InexactFloat64(),
		TotalProfit:   s.TotalProfit.InexactFloat64(),
		PaymentMethod: s.PaymentMethod,
		StaffID:       s.StaffID,
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
