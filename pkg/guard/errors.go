package guard

import "errors"

var (
	// ErrInvalidCredentials indicates Login received an empty token or role.
	ErrInvalidCredentials = errors.New("guard.invalid_credentials")

	// ErrNotReady indicates the context ended before session restoration resolved.
	ErrNotReady = errors.New("guard.not_ready")

	// ErrInvalidRoute indicates a malformed route table entry.
	ErrInvalidRoute = errors.New("guard.invalid_route")
)
