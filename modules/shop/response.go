package shop

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/dashmarket/storefront/pkg/logger"
)

const maxBodyBytes = 64 << 10

// bindJSON decodes a strict JSON request body into v.
func bindJSON(w http.ResponseWriter, r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: expected application/json", ErrBadRequest)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return errors.Join(ErrBadRequest, err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrBadRequest)
	}
	return nil
}

func render(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// renderError writes the error envelope. Server-side failures are logged,
// client mistakes are not.
func renderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	he := toHTTPError(err)
	if he.Code >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			logger.Route(r.URL.Path),
			slog.Int("status", he.Code),
			logger.Error(err),
		)
	}
	render(w, he.Code, he)
}
