package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/508labs/spendings/internal/platform/spending"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// SpendingServiceInterface defines the spending operations needed by TransactionHandler
type SpendingServiceInterface interface {
	Create(ctx context.Context, in spending.CreateInput) (uuid.UUID, error)
	List(ctx context.Context, clientID, category string, limit int) ([]spending.Record, error)
	Balance(ctx context.Context, clientID string) (float64, error)
	CategoryTotals(ctx context.Context, clientID string) (map[string]float64, error)
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	service      SpendingServiceInterface
	defaultLimit int
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service SpendingServiceInterface, defaultLimit int) *TransactionHandler {
	return &TransactionHandler{
		service:      service,
		defaultLimit: defaultLimit,
	}
}

// CreateTransactionResponse is the response for a created transaction
type CreateTransactionResponse struct {
	ID string `json:"id"`
}

// TransactionListResponse wraps the transaction list
type TransactionListResponse struct {
	Items []spending.Record `json:"items"`
}

// BalanceResponse carries the client's summed balance
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// CategoryTotalsResponse carries the per-category totals mapping
type CategoryTotalsResponse struct {
	Categories map[string]float64 `json:"categories"`
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in spending.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, apperrors.BadRequest("invalid request body"))
		return
	}

	id, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondErr(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, CreateTransactionResponse{ID: id.String()})
}

// ListTransactions handles GET /api/transactions
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := h.defaultLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondErr(w, apperrors.BadRequest("invalid limit"))
			return
		}
		limit = parsed
	}

	items, err := h.service.List(r.Context(), query.Get("client_id"), query.Get("category"), limit)
	if err != nil {
		respondErr(w, err)
		return
	}
	if items == nil {
		items = []spending.Record{}
	}

	respondWithJSON(w, http.StatusOK, TransactionListResponse{Items: items})
}

// GetBalance handles GET /api/balance
func (h *TransactionHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.Balance(r.Context(), r.URL.Query().Get("client_id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
}

// GetCategoryTotals handles GET /api/categories
func (h *TransactionHandler) GetCategoryTotals(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.CategoryTotals(r.Context(), r.URL.Query().Get("client_id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, CategoryTotalsResponse{Categories: categories})
}
