package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/508labs/spendings/internal/platform/spending"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
	"github.com/508labs/spendings/internal/transport/httpapi/handler"
)

// MockSpendingService is a mock implementation of SpendingServiceInterface
type MockSpendingService struct {
	mock.Mock
}

func (m *MockSpendingService) Create(ctx context.Context, in spending.CreateInput) (uuid.UUID, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSpendingService) List(ctx context.Context, clientID, category string, limit int) ([]spending.Record, error) {
	args := m.Called(ctx, clientID, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]spending.Record), args.Error(1)
}

func (m *MockSpendingService) Balance(ctx context.Context, clientID string) (float64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSpendingService) CategoryTotals(ctx context.Context, clientID string) (map[string]float64, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func TestCreateTransaction(t *testing.T) {
	t.Run("returns created id", func(t *testing.T) {
		svc := new(MockSpendingService)
		h := handler.NewTransactionHandler(svc, 200)

		id := uuid.New()
		svc.On("Create", mock.Anything, mock.AnythingOfType("spending.CreateInput")).Return(id, nil)

		body := bytes.NewBufferString(`{"client_id":"c1","amount":10,"type":"income","category":"Salary"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", body)
		rec := httptest.NewRecorder()

		h.CreateTransaction(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp handler.CreateTransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, id.String(), resp.ID)
		svc.AssertExpectations(t)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		svc := new(MockSpendingService)
		h := handler.NewTransactionHandler(svc, 200)

		req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()

		h.CreateTransaction(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("validation error carries field detail", func(t *testing.T) {
		svc := new(MockSpendingService)
		h := handler.NewTransactionHandler(svc, 200)

		svc.On("Create", mock.Anything, mock.Anything).Return(uuid.Nil,
			apperrors.Validation(apperrors.FieldError{Field: "amount", Message: "is required"}))

		req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString(`{"client_id":"c1"}`))
		rec := httptest.NewRecorder()

		h.CreateTransaction(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp handler.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Fields, 1)
		assert.Equal(t, "amount", resp.Fields[0].Field)
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		svc := new(MockSpendingService)
		h := handler.NewTransactionHandler(svc, 200)

		svc.On("Create", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("connection refused"))

		req := httptest.NewRequest(http.MethodPost, "/api/transactions",
			bytes.NewBufferString(`{"client_id":"c1","amount":10,"type":"income","category":"Salary"}`))
		rec := httptest.NewRecorder()

		h.CreateTransaction(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("passes default limit when omitted", func(t *testing.T) {
		svc := new(MockSpendingService)
		h := handler.NewTransactionHandler(svc, 42)

		svc.On("List", mock.Anything, "c1", "", 42).Return([]spending.Record{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions?client_id=c1", nil)
		rec := httptest.NewRecorder()

		h.ListTransactions(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("parses explicit limit and category", func(t *testing.T) {
		svc := new(MockSpendingService)
		h := handler.NewTransactionHandler(svc, 42)

		svc.On("List", mock.Anything, "c1", "Food", 5).Return([]spending.Record{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions?client_id=c1&category=Food&limit=5", nil)
		rec := httptest.NewRecorder()

		h.ListTransactions(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("rejects malformed limit", func(t *testing.T) {
		svc := new(MockSpendingService)
		h := handler.NewTransactionHandler(svc, 42)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions?client_id=c1&limit=-3", nil)
		rec := httptest.NewRecorder()

		h.ListTransactions(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"invalid limit"}`, rec.Body.String())
		svc.AssertNotCalled(t, "List")
	})

	t.Run("nil result serializes as empty array", func(t *testing.T) {
		svc := new(MockSpendingService)
		h := handler.NewTransactionHandler(svc, 42)

		svc.On("List", mock.Anything, "c1", "", 42).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions?client_id=c1", nil)
		rec := httptest.NewRecorder()

		h.ListTransactions(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
	})
}

func TestGetBalance(t *testing.T) {
	svc := new(MockSpendingService)
	h := handler.NewTransactionHandler(svc, 200)

	svc.On("Balance", mock.Anything, "c1").Return(30.0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/balance?client_id=c1", nil)
	rec := httptest.NewRecorder()

	h.GetBalance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":30}`, rec.Body.String())
}

func TestGetCategoryTotals(t *testing.T) {
	svc := new(MockSpendingService)
	h := handler.NewTransactionHandler(svc, 200)

	svc.On("CategoryTotals", mock.Anything, "c1").Return(map[string]float64{"Salary": 50, "Food": -20}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/categories?client_id=c1", nil)
	rec := httptest.NewRecorder()

	h.GetCategoryTotals(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":{"Salary":50,"Food":-20}}`, rec.Body.String())
}
