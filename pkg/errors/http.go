// Package errors holds transport-level error types shared by delivery layers.
package errors

import "fmt"

// HTTPError is a domain error already mapped to an HTTP status.
type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// ErrInternalServerError is returned for errors that carry no client-facing meaning.
var ErrInternalServerError = NewHTTPError(500, "internal server error")
