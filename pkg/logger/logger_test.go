package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmarket/storefront/pkg/logger"
	"github.com/dashmarket/storefront/pkg/visitor"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")
		assert.Equal(t, "test", decode(t, buf)["svc"])
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Zero(t, buf.Len())
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment("prod", "storefront"))
		log.Debug("hidden")
		log.Info("shown")

		entry := decode(t, buf)
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "storefront", entry["service"])
		assert.Equal(t, logger.EnvProduction, entry["env"])
	})

	t.Run("development is verbose text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment("", "storefront"))
		log.Debug("shown")

		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "env=development")
	})
}

func TestContextExtractors(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(logger.RequestIDExtractor, logger.VisitorIDExtractor, nil),
	)

	t.Run("empty context adds nothing", func(t *testing.T) {
		buf.Reset()
		log.InfoContext(context.Background(), "msg")

		entry := decode(t, buf)
		assert.NotContains(t, entry, "request_id")
		assert.NotContains(t, entry, "visitor_id")
	})

	t.Run("request and visitor ids", func(t *testing.T) {
		buf.Reset()
		id := uuid.New()

		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := visitor.WithContext(r.Context(), id)
			log.InfoContext(ctx, "msg")
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		entry := decode(t, buf)
		assert.NotEmpty(t, entry["request_id"])
		assert.Equal(t, id.String(), entry["visitor_id"])
	})

	t.Run("survives WithGroup", func(t *testing.T) {
		buf.Reset()
		ctx := visitor.WithContext(context.Background(), uuid.New())
		log.WithGroup("cart").InfoContext(ctx, "msg", slog.Int("count", 1))

		entry := decode(t, buf)
		assert.Contains(t, entry, "cart")
	})
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)

	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	grouped := logger.Errors(nil, errors.New("a"), errors.New("b"))
	assert.Equal(t, "errors", grouped.Key)
	assert.Len(t, grouped.Value.Group(), 2)

	assert.Equal(t, "visitor_id", logger.VisitorID("v").Key)
	assert.Equal(t, "item_id", logger.ItemID("1").Key)
	assert.Equal(t, "role", logger.Role("").Key)
}
