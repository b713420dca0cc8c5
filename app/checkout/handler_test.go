package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jamesabinibi/trybe-pos/models"
)

// --- Mock Processor ---

type MockProcessor struct {
	Receipt Receipt
	Err     error

	// Fields to capture call arguments
	lastCart          []CartLine
	lastPaymentMethod string
	lastStaffID       *uint
	called            bool
}

func (m *MockProcessor) Process(ctx context.Context, cart []CartLine, paymentMethod string, staffID *uint) (Receipt, error) {
	m.called = true
	m.lastCart = cart
	m.lastPaymentMethod = paymentMethod
	m.lastStaffID = staffID
	if m.Err != nil {
		return Receipt{}, m.Err
	}
	return m.Receipt, nil
}

// --- Tests ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		mockSetup          func() *MockProcessor
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkCall          func(t *testing.T, m *MockProcessor)
	}{
		{
			name: "Successful checkout",
			body: `{"items":[{"variant_id":1,"quantity":2}],"payment_method":"cash","staff_id":7}`,
			mockSetup: func() *MockProcessor {
				return &MockProcessor{Receipt: Receipt{SaleID: 12, InvoiceNumber: "INV-1748779200000000000"}}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp checkoutResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, uint(12), resp.SaleID)
				assert.Equal(t, "INV-1748779200000000000", resp.InvoiceNumber)
			},
			checkCall: func(t *testing.T, m *MockProcessor) {
				assert.Len(t, m.lastCart, 1)
				assert.Equal(t, uint(1), m.lastCart[0].VariantID)
				assert.Equal(t, 2, m.lastCart[0].Quantity)
				assert.Nil(t, m.lastCart[0].PriceOverride)
				assert.Equal(t, "cash", m.lastPaymentMethod)
				if assert.NotNil(t, m.lastStaffID) {
					assert.Equal(t, uint(7), *m.lastStaffID)
				}
			},
		},
		{
			name: "Price override is forwarded",
			body: `{"items":[{"variant_id":3,"quantity":1,"price_override":79.99}],"payment_method":"card"}`,
			mockSetup: func() *MockProcessor {
				return &MockProcessor{Receipt: Receipt{SaleID: 1, InvoiceNumber: "INV-1"}}
			},
			expectedStatusCode: http.StatusCreated,
			checkCall: func(t *testing.T, m *MockProcessor) {
				assert.Len(t, m.lastCart, 1)
				if assert.NotNil(t, m.lastCart[0].PriceOverride) {
					assert.Equal(t, 79.99, m.lastCart[0].PriceOverride.InexactFloat64())
				}
				assert.Nil(t, m.lastStaffID)
			},
		},
		{
			name: "Empty cart",
			body: `{"items":[],"payment_method":"cash"}`,
			mockSetup: func() *MockProcessor {
				return &MockProcessor{Err: ErrEmptyCart}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "No items in sale", errResp["error"])
			},
		},
		{
			name: "Unknown variant",
			body: `{"items":[{"variant_id":99,"quantity":1}],"payment_method":"cash"}`,
			mockSetup: func() *MockProcessor {
				return &MockProcessor{Err: models.ErrVariantNotFound}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "variant not found", errResp["error"])
			},
		},
		{
			name: "Insufficient stock",
			body: `{"items":[{"variant_id":1,"quantity":100}],"payment_method":"cash"}`,
			mockSetup: func() *MockProcessor {
				return &MockProcessor{Err: models.ErrInsufficientStock}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "insufficient stock", errResp["error"])
			},
		},
		{
			name: "Store unavailable",
			body: `{"items":[{"variant_id":1,"quantity":1}],"payment_method":"cash"}`,
			mockSetup: func() *MockProcessor {
				return &MockProcessor{Err: errors.New("db connection lost")}
			},
			expectedStatusCode: http.StatusServiceUnavailable,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "store unavailable", errResp["error"])
			},
		},
		{
			name: "Malformed JSON",
			body: `{"items": [`,
			mockSetup: func() *MockProcessor {
				return &MockProcessor{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkCall: func(t *testing.T, m *MockProcessor) {
				assert.False(t, m.called, "processor must not run on a malformed body")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mock := tc.mockSetup()
			handler := NewCheckoutHandler(mock)
			req := httptest.NewRequest("POST", "/sales", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkCall != nil {
				tc.checkCall(t, mock)
			}
		})
	}
}
