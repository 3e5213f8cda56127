package visitor

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey struct{}

func WithContext(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(contextKey{}).(uuid.UUID)
	return id, ok
}

// Middleware identifies the visitor and stores the ID in the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := m.Identify(w, r)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}
