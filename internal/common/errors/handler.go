// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// Responder writes request errors with standardized error handling
type Responder struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewResponder(logger Logger) *Responder {
	return &Responder{logger: logger}
}

// WriteError handles any error raised while serving a request
func (h *Responder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	// Normalize to APIError
	apiErr := h.normalizeError(err)

	// Log
	h.logError(r, apiErr)

	// Respond
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: apiErr.Message})
}

// normalizeError ensures we always have an APIError
func (h *Responder) normalizeError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		if apiErr.Status == 0 {
			apiErr.Status = HTTPStatus(apiErr.Code)
		}
		return apiErr
	}
	return &APIError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

func (h *Responder) logError(r *http.Request, apiErr *APIError) {
	fields := map[string]interface{}{
		"method":        r.Method,
		"path":          r.URL.Path,
		"errorCode":     string(apiErr.Code),
		"status":        apiErr.Status,
		"message":       apiErr.Message,
		"details":       apiErr.Details,
		"errorCategory": GetErrorCategory(apiErr.Code),
	}

	// Client mistakes log at warn; only server faults log at error.
	if IsClientError(apiErr.Code) {
		h.logger.Warn("Request rejected", fields)
		return
	}
	h.logger.Error("Request failed", fields)
}
