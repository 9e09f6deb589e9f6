package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"invoicefx/internal/apperrors"
	"invoicefx/internal/infrastructure/logger"
)

// sendJSON writes a JSON response with the given status code
func sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// sendErrorResponse writes a standardized error response
func sendErrorResponse(w http.ResponseWriter, errMsg, description string, status int, requestID string) {
	sendJSON(w, status, ErrorResponse{
		Error:       errMsg,
		Status:      status,
		Description: description,
		RequestID:   requestID,
	})
}

// sendServiceError maps service-layer errors onto HTTP statuses
func sendServiceError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	var provErr *apperrors.ProviderError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		sendErrorResponse(w, "Record not found", err.Error(), http.StatusNotFound, requestID)
	case errors.Is(err, apperrors.ErrValidation):
		sendErrorResponse(w, "Validation failed", err.Error(), http.StatusBadRequest, requestID)
	case errors.As(err, &provErr):
		status := http.StatusBadGateway
		if provErr.Kind == apperrors.ProviderInvalidCurrency {
			status = http.StatusBadRequest
		}
		sendErrorResponse(w, "Rate provider error", err.Error(), status, requestID)
	default:
		log.Error("Unhandled service error", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, "Internal error", "An unexpected error occurred", http.StatusInternalServerError, requestID)
	}
}
