package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is an error response from the API, classed by HTTP status
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 response
func IsUnauthorized(err error) bool {
	return isStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}

func isStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// ServerMessage extracts the server-provided message from err, or returns
// fallback when the error carries none (e.g. a network failure)
func ServerMessage(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
