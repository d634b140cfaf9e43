// Package errors provides standardized error handling for the attraction
// search service.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidSearchParams ErrorCode = "INVALID_SEARCH_PARAMS"

	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	ErrCodeProviderTimeout     ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeProviderBadRequest  ErrorCode = "PROVIDER_BAD_REQUEST"

	ErrCodeLocalStoreQueryFailed ErrorCode = "LOCAL_STORE_QUERY_FAILED"
	ErrCodeLocalStoreWriteFailed ErrorCode = "LOCAL_STORE_WRITE_FAILED"

	ErrCodePlaceNotFound         ErrorCode = "PLACE_NOT_FOUND"
	ErrCodeUnresolvableReference ErrorCode = "UNRESOLVABLE_REFERENCE"

	ErrCodeCacheBackendFailed ErrorCode = "CACHE_BACKEND_FAILED"

	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewInvalidSearchParamsError creates a non-retryable caller-input error.
func NewInvalidSearchParamsError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSearchParams,
		Message:   "Malformed search parameters",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnavailableError creates a retryable provider error. The
// orchestrator absorbs it; the code exists so gateways can report a typed
// cause in logs and metrics.
func NewProviderUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnavailable,
		Message:   "Places provider error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError creates a retryable provider timeout error.
func NewProviderTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   "Places provider timeout",
		Details:   "provider call exceeded the gateway timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderBadRequestError creates a non-retryable provider rejection.
func NewProviderBadRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderBadRequest,
		Message:   "Places provider rejected the request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocalStoreQueryFailedError creates a retryable document store error.
func NewLocalStoreQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocalStoreQueryFailed,
		Message:   "Local store query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocalStoreWriteFailedError creates a retryable document store write error.
func NewLocalStoreWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocalStoreWriteFailed,
		Message:   "Local store write error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlaceNotFoundError creates a non-retryable not-found error.
func NewPlaceNotFoundError(placeID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlaceNotFound,
		Message:   "Place not found",
		Details:   fmt.Sprintf("placeId: %s", placeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnresolvableReferenceError marks a reference that could not be resolved
// to a live place record. Graceful-degradation paths treat it as an empty
// contribution; tests can still inspect the cause.
func NewUnresolvableReferenceError(placeID string, err error) *StandardError {
	details := fmt.Sprintf("placeId: %s", placeID)
	if err != nil {
		details = fmt.Sprintf("placeId: %s, cause: %s", placeID, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeUnresolvableReference,
		Message:   "Referenced place could not be resolved",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheBackendFailedError creates a retryable cache backend error.
func NewCacheBackendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheBackendFailed,
		Message:   "Cache backend error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a non-retryable authentication error.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := err.(*StandardError)
	return ok && se.Code == code
}
