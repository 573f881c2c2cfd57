package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Authentication & Authorization
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("action forbidden")

	// Notifications
	ErrProviderRejected    = errors.New("push provider rejected the message")
	ErrProviderUnavailable = errors.New("push provider unavailable")

	// Cache
	ErrCacheMiss = errors.New("cache miss")

	// Generic
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-facing message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

// NewInternalError hides err behind a static message. Analytics endpoints
// each carry their own message ("Metrics API error", "FRT error", ...).
func NewInternalError(err error, message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: 500,
	}
}

// ProviderError carries the push provider's own description of a failure.
// The description is returned to API callers verbatim.
type ProviderError struct {
	Err         error
	Description string
	StatusCode  int
}

func NewProviderError(err error, description string, statusCode int) *ProviderError {
	return &ProviderError{Err: err, Description: description, StatusCode: statusCode}
}

func (e *ProviderError) Error() string {
	return e.Description
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderMessage extracts the text to surface for a failed dispatch.
func ProviderMessage(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) && perr.Description != "" {
		return perr.Description
	}
	return err.Error()
}
