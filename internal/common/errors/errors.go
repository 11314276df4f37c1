// Package errors provides standardized error handling for the activities API boundary.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadySignedUp  ErrorCode = "ALREADY_SIGNED_UP"
	ErrCodeNotRegistered    ErrorCode = "NOT_REGISTERED"
	ErrCodeActivityFull     ErrorCode = "ACTIVITY_FULL"

	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a structured application error bound for an HTTP response.
// Message is the client-facing detail string; Details carries internal context
// that is logged but never returned to the caller.
type APIError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError[%s]: %s", e.Code, e.Message)
}

// ErrorResponse is the wire shape of every error returned by the API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ==========================
// 2. Error Constructors
// ==========================

// NewActivityNotFoundError reports that no activity exists with the given name.
func NewActivityNotFoundError(activity string) *APIError {
	return &APIError{
		Code:      ErrCodeActivityNotFound,
		Message:   "Activity not found",
		Details:   fmt.Sprintf("activity: %s", activity),
		Status:    http.StatusNotFound,
		Timestamp: time.Now().UTC(),
	}
}

// NewAlreadySignedUpError reports a duplicate signup for the same activity.
func NewAlreadySignedUpError(email, activity string) *APIError {
	return &APIError{
		Code:      ErrCodeAlreadySignedUp,
		Message:   fmt.Sprintf("%s is already signed up", email),
		Details:   fmt.Sprintf("activity: %s", activity),
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotRegisteredError reports an unregister attempt for a student who is
// not on the activity's roster.
func NewNotRegisteredError(email, activity string) *APIError {
	return &APIError{
		Code:      ErrCodeNotRegistered,
		Message:   fmt.Sprintf("%s is not registered for this activity", email),
		Details:   fmt.Sprintf("activity: %s", activity),
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityFullError reports a signup attempt against a full roster.
func NewActivityFullError(activity string) *APIError {
	return &APIError{
		Code:      ErrCodeActivityFull,
		Message:   "Activity is full",
		Details:   fmt.Sprintf("activity: %s", activity),
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingParameterError reports a required query parameter that was absent or empty.
func NewMissingParameterError(param string) *APIError {
	return &APIError{
		Code:      ErrCodeInvalidRequest,
		Message:   fmt.Sprintf("%s query parameter is required", param),
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a generic client-input error.
func NewInvalidRequestError(message, details string) *APIError {
	return &APIError{
		Code:      ErrCodeInvalidRequest,
		Message:   message,
		Details:   details,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error. The underlying cause is kept in
// Details for logging; the client only ever sees the generic message.
func NewInternalError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// HTTPStatus returns the response status for an error code.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeActivityNotFound:
		return http.StatusNotFound

	case ErrCodeAlreadySignedUp,
		ErrCodeNotRegistered,
		ErrCodeActivityFull,
		ErrCodeInvalidRequest:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// IsClientError checks if an error code maps to a 4xx response.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatus(code)
	return status >= 400 && status < 500
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.Contains(codeStr, "SIGNED_UP") || strings.Contains(codeStr, "REGISTERED") || strings.Contains(codeStr, "FULL"):
		return "ROSTER"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
