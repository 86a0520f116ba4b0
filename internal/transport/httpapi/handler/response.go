package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// ErrorResponse represents an error response. Fields carries per-field
// detail for validation failures.
type ErrorResponse struct {
	Error  string                 `json:"error"`
	Fields []apperrors.FieldError `json:"fields,omitempty"`
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondErr maps an application error to its HTTP status. Errors without
// an AppError in their chain are reported as a generic server error.
func respondErr(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeBadRequest:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}

	respondWithJSON(w, status, ErrorResponse{
		Error:  appErr.Message,
		Fields: appErr.Fields,
	})
}
