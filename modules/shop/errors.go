package shop

import (
	"errors"
	"net/http"

	"github.com/dashmarket/storefront/pkg/backend"
	"github.com/dashmarket/storefront/pkg/catalog"
	"github.com/dashmarket/storefront/pkg/guard"
)

var (
	ErrEmptyCart        = errors.New("shop.empty_cart")
	ErrNotAuthenticated = errors.New("shop.not_authenticated")
	ErrNoVisitor        = errors.New("shop.no_visitor")
	ErrNoStorage        = errors.New("shop.no_storage")
	ErrInvalidCapacity  = errors.New("shop.invalid_capacity")
	ErrBadRequest       = errors.New("shop.bad_request")
)

// HTTPError is the JSON error envelope. Key is stable and meant for
// client-side translation; Redirect tells the page where to go next.
type HTTPError struct {
	Code     int                      `json:"-"`
	Key      string                   `json:"error"`
	Redirect string                   `json:"redirect,omitempty"`
	Message  string                   `json:"message,omitempty"`
	Fields   catalog.ValidationErrors `json:"fields,omitempty"`
}

func (e HTTPError) Error() string { return e.Key }

// toHTTPError maps package errors to a response.
func toHTTPError(err error) HTTPError {
	var ve catalog.ValidationErrors
	var se *backend.StatusError

	switch {
	case errors.As(err, &ve):
		return HTTPError{Code: http.StatusUnprocessableEntity, Key: "invalid_item", Fields: ve}
	case errors.Is(err, ErrBadRequest):
		return HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	case errors.Is(err, ErrEmptyCart):
		return HTTPError{Code: http.StatusConflict, Key: "empty_cart", Redirect: "/cart"}
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, backend.ErrUnauthorized):
		return HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	case errors.Is(err, backend.ErrNotFound):
		return HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	case errors.Is(err, backend.ErrRejected):
		e := HTTPError{Code: http.StatusUnprocessableEntity, Key: "rejected"}
		if errors.As(err, &se) {
			e.Message = se.Message
		}
		return e
	case errors.Is(err, guard.ErrNotReady):
		return HTTPError{Code: http.StatusServiceUnavailable, Key: "session_not_ready"}
	case errors.Is(err, backend.ErrUnavailable), errors.Is(err, backend.ErrInvalidResponse),
		errors.Is(err, guard.ErrInvalidCredentials):
		return HTTPError{Code: http.StatusBadGateway, Key: "bad_gateway"}
	default:
		return HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	}
}
