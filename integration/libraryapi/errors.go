package libraryapi

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidBaseURL is returned by New for an empty or relative URL.
	ErrInvalidBaseURL = errors.New("libraryapi: base url must be absolute")
	// ErrUnavailable wraps transport failures: the backend could not be reached
	// or the call was cancelled.
	ErrUnavailable = errors.New("libraryapi: backend unavailable")
	// ErrDecode wraps malformed success payloads.
	ErrDecode = errors.New("libraryapi: malformed response")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status int
	// Message is the backend's {"message"} when present, else the status text.
	Message string
	// FromBackend tells whether Message came from the response body.
	FromBackend bool
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusCode lets HTTP error handlers map the error to a status page.
func (e *APIError) StatusCode() int {
	return e.Status
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Message returns the backend-supplied message carried by err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.FromBackend && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
