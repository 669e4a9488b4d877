package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to its HTTP status. The
// fallback message is used for internal errors so storage details never
// reach the client.
func respondWithAppError(w http.ResponseWriter, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
			return
		}
	}
	respondWithError(w, http.StatusInternalServerError, fallback)
}
