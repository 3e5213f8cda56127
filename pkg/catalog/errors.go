package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidID indicates an ID that is neither a JSON string nor a number.
var ErrInvalidID = errors.New("catalog.invalid_id")

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when a dashboard cannot become a cart item.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "catalog: validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "catalog: validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// rule pairs a check with the error reported when it fails.
type rule struct {
	ok  bool
	err ValidationError
}

func apply(rules ...rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.ok {
			errs = append(errs, r.err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
