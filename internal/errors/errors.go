package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeCaptureUnavailable means no image or audio frame was available to process
	ErrorTypeCaptureUnavailable ErrorType = "capture_unavailable"
	// ErrorTypeMalformedResponse means the remote model reply failed schema/JSON validation
	ErrorTypeMalformedResponse ErrorType = "malformed_response"
	// ErrorTypeRemoteCallFailed means the network or API call to the model failed
	ErrorTypeRemoteCallFailed ErrorType = "remote_call_failed"
	// ErrorTypeSynthesisUnavailable means no local or cloud voice could be produced
	ErrorTypeSynthesisUnavailable ErrorType = "synthesis_unavailable"
	ErrorTypeValidation           ErrorType = "validation"
	ErrorTypeTimeout              ErrorType = "timeout"
	ErrorTypeNotFound             ErrorType = "not_found"
	ErrorTypeInternal             ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewCaptureUnavailableError creates an error for a missing capture frame
func NewCaptureUnavailableError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeCaptureUnavailable,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewMalformedResponseError creates an error for an unparseable model reply
func NewMalformedResponseError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedResponse,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewRemoteCallFailedError creates an error for a failed model call
func NewRemoteCallFailedError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRemoteCallFailed,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewSynthesisUnavailableError creates an error for failed speech synthesis.
// Speech is best-effort, so this type is logged and never surfaced to callers.
func NewSynthesisUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeSynthesisUnavailable,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
