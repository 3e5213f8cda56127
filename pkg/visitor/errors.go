package visitor

import "errors"

var (
	ErrNoSecret         = errors.New("visitor.no_secret")
	ErrSecretTooShort   = errors.New("visitor.secret_too_short")
	ErrInvalidSignature = errors.New("visitor.invalid_signature")
	ErrInvalidFormat    = errors.New("visitor.invalid_format")
	ErrNotInContext     = errors.New("visitor.not_in_context")
)
