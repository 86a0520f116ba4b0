package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/508labs/spendings/internal/platform/share"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// ShareServiceInterface defines the share operations needed by ShareHandler
type ShareServiceInterface interface {
	Create(ctx context.Context, clientID string) (string, error)
	Resolve(ctx context.Context, token string) (*share.Dashboard, error)
}

// ShareHandler handles share token HTTP requests
type ShareHandler struct {
	service ShareServiceInterface
}

// NewShareHandler creates a new share handler
func NewShareHandler(service ShareServiceInterface) *ShareHandler {
	return &ShareHandler{service: service}
}

// CreateShareRequest is the share creation payload
type CreateShareRequest struct {
	ClientID string `json:"client_id"`
}

// CreateShareResponse carries the issued token
type CreateShareResponse struct {
	Token string `json:"token"`
}

// CreateShare handles POST /api/share
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperrors.BadRequest("invalid request body"))
		return
	}

	token, err := h.service.Create(r.Context(), req.ClientID)
	if err != nil {
		respondErr(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, CreateShareResponse{Token: token})
}

// GetSharedDashboard handles GET /api/share/{token}
func (h *ShareHandler) GetSharedDashboard(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		respondErr(w, apperrors.BadRequest("share token is required"))
		return
	}

	dashboard, err := h.service.Resolve(r.Context(), token)
	if err != nil {
		respondErr(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}
