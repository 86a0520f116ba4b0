package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/508labs/spendings/internal/platform/recurring"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// RecurringServiceInterface defines the recurring operations needed by RecurringHandler
type RecurringServiceInterface interface {
	Create(ctx context.Context, in recurring.CreateInput) (uuid.UUID, error)
	List(ctx context.Context, clientID string) ([]recurring.Record, error)
	Reminders(ctx context.Context, clientID string) ([]recurring.DueItem, error)
}

// RecurringHandler handles recurring schedule HTTP requests
type RecurringHandler struct {
	service RecurringServiceInterface
}

// NewRecurringHandler creates a new recurring handler
func NewRecurringHandler(service RecurringServiceInterface) *RecurringHandler {
	return &RecurringHandler{service: service}
}

// CreateRecurringResponse is the response for a created recurring schedule
type CreateRecurringResponse struct {
	ID string `json:"id"`
}

// RecurringListResponse wraps the recurring schedule list
type RecurringListResponse struct {
	Items []recurring.Record `json:"items"`
}

// RemindersResponse wraps the due-item projection
type RemindersResponse struct {
	Due []recurring.DueItem `json:"due"`
}

// CreateRecurring handles POST /api/recurring
func (h *RecurringHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var in recurring.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, apperrors.BadRequest("invalid request body"))
		return
	}

	id, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondErr(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, CreateRecurringResponse{ID: id.String()})
}

// ListRecurring handles GET /api/recurring
func (h *RecurringHandler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), r.URL.Query().Get("client_id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	if items == nil {
		items = []recurring.Record{}
	}

	respondWithJSON(w, http.StatusOK, RecurringListResponse{Items: items})
}

// GetReminders handles GET /api/reminders
func (h *RecurringHandler) GetReminders(w http.ResponseWriter, r *http.Request) {
	due, err := h.service.Reminders(r.Context(), r.URL.Query().Get("client_id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	if due == nil {
		due = []recurring.DueItem{}
	}

	respondWithJSON(w, http.StatusOK, RemindersResponse{Due: due})
}
