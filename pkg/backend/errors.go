package backend

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized    = errors.New("backend.unauthorized")
	ErrNotFound        = errors.New("backend.not_found")
	ErrRejected        = errors.New("backend.rejected")
	ErrUnavailable     = errors.New("backend.unavailable")
	ErrInvalidResponse = errors.New("backend.invalid_response")
)

// StatusError carries a non-2xx answer from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.Code)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Code, e.Message)
}
