package sales

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jamesabinibi/trybe-pos/models"
)

// --- Mocks ---

type MockSaleRepo struct {
	Sales []models.Sale
	Err   error

	lastCalledOffset int
	lastCalledLimit  int
	lastCalledID     uint
}

func (m *MockSaleRepo) ListSales(ctx context.Context, offset, limit int) ([]models.Sale, int64, error) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Sales, int64(len(m.Sales)), nil
}

func (m *MockSaleRepo) GetSaleWithItems(ctx context.Context, id uint) (*models.Sale, error) {
	m.lastCalledID = id
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.Sales {
		if s.ID == id {
			sale := s
			return &sale, nil
		}
	}
	return nil, models.ErrSaleNotFound
}

type MockReverser struct {
	Err error

	lastCalledID uint
	called       bool
}

func (m *MockReverser) ReverseSale(ctx context.Context, saleID uint) error {
	m.called = true
	m.lastCalledID = saleID
	return m.Err
}

// --- Helpers ---

func newTestSale(id uint, invoice string, amount, profit float64) models.Sale {
	return models.Sale{
		ID:            id,
		InvoiceNumber: invoice,
		TotalAmount:   decimal.NewFromFloat(amount),
		TotalProfit:   decimal.NewFromFloat(profit),
		PaymentMethod: "cash",
		Items: []models.SaleItem{
			{VariantID: 1, Quantity: 2, SellingPrice: decimal.NewFromFloat(amount / 2)},
		},
	}
}

// --- Tests ---

func TestHandleList(t *testing.T) {
	repo := &MockSaleRepo{
		Sales: []models.Sale{
			newTestSale(1, "INV-100", 40, 20),
			newTestSale(2, "INV-200", 15, 5),
		},
	}
	handler := NewSalesHandler(repo, &MockReverser{})

	req := httptest.NewRequest("GET", "/sales?offset=0&limit=50", nil)
	rec := httptest.NewRecorder()

	handler.HandleList(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ListResponse
	err := json.NewDecoder(rec.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Sales, 2)
	assert.Equal(t, "INV-100", resp.Sales[0].InvoiceNumber)
	assert.Equal(t, 40.0, resp.Sales[0].TotalAmount)
	assert.Equal(t, 50, repo.lastCalledLimit)
}

func TestHandleGet(t *testing.T) {
	testCases := []struct {
		name               string
		saleID             string
		repo               *MockSaleRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Existing sale",
			saleID:             "1",
			repo:               &MockSaleRepo{Sales: []models.Sale{newTestSale(1, "INV-100", 40, 20)}},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Sale
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, uint(1), resp.ID)
				assert.Equal(t, "INV-100", resp.InvoiceNumber)
				assert.Len(t, resp.Items, 1)
			},
		},
		{
			name:               "Unknown sale",
			saleID:             "99",
			repo:               &MockSaleRepo{},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Invalid id",
			saleID:             "abc",
			repo:               &MockSaleRepo{},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Repository error",
			saleID:             "1",
			repo:               &MockSaleRepo{Err: errors.New("db connection lost")},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewSalesHandler(tc.repo, &MockReverser{})
			req := httptest.NewRequest("GET", "/sales/"+tc.saleID, nil)
			req.SetPathValue("id", tc.saleID)
			rec := httptest.NewRecorder()

			handler.HandleGet(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		saleID             string
		reverser           *MockReverser
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkCall          func(t *testing.T, m *MockReverser)
	}{
		{
			name:               "Successful reversal",
			saleID:             "12",
			reverser:           &MockReverser{},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp map[string]bool
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.True(t, resp["success"])
			},
			checkCall: func(t *testing.T, m *MockReverser) {
				assert.Equal(t, uint(12), m.lastCalledID)
			},
		},
		{
			name:               "Unknown sale",
			saleID:             "99",
			reverser:           &MockReverser{Err: models.ErrSaleNotFound},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Sale not found", errResp["error"])
			},
		},
		{
			name:               "Reversal failure",
			saleID:             "12",
			reverser:           &MockReverser{Err: errors.New("db connection lost")},
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name:               "Invalid id",
			saleID:             "abc",
			reverser:           &MockReverser{},
			expectedStatusCode: http.StatusBadRequest,
			checkCall: func(t *testing.T, m *MockReverser) {
				assert.False(t, m.called, "reversal must not run for a bad id")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewSalesHandler(&MockSaleRepo{}, tc.reverser)
			req := httptest.NewRequest("DELETE", "/sales/"+tc.saleID, nil)
			req.SetPathValue("id", tc.saleID)
			rec := httptest.NewRecorder()

			handler.HandleDelete(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkCall != nil {
				tc.checkCall(t, tc.reverser)
			}
		})
	}
}
