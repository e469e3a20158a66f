// Package handlers provides the HTTP handlers for the JSON API.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mealforge/mealforge/pkg/errors"
)

type errorBody struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Details string           `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeError maps application errors to their HTTP status. Unknown
// errors become opaque 500s so internals never leak to clients.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		logger.Error("unhandled error", zap.Error(err))
		appErr = errors.NewInternalError("An unexpected error occurred")
	}

	writeJSON(w, appErr.StatusCode(), errorResponse{Error: errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}
