package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

// NewValidationError marks bad input: malformed fields, invalid foreign
// references, invalid date ranges, deposit above total.
func NewValidationError(msg string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, msg)
}

// NewNotFoundError marks a missing entity looked up by id.
func NewNotFoundError(msg string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, msg)
}

// NewConflictError marks an overlapping booking rejected by the ledger.
func NewConflictError(msg string) *HTTPError {
	return NewHTTPError(http.StatusConflict, msg)
}
