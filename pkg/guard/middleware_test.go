package guard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmarket/storefront/pkg/guard"
	"github.com/dashmarket/storefront/pkg/storage"
)

func page(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := guard.FromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Role", s.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	ctx := context.Background()

	serve := func(g *guard.Guard, req guard.Requirement, path string) *httptest.ResponseRecorder {
		resolve := func(*http.Request) (*guard.Guard, error) { return g, nil }
		h := guard.Middleware(resolve, req)(page(t))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	t.Run("anonymous visitor is sent to login with origin", func(t *testing.T) {
		g := guard.New(storage.NewMemory())
		w := serve(g, guard.Requirement{RequireAuth: true}, "/checkout")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login?from=%2Fcheckout", w.Header().Get("Location"))
	})

	t.Run("restored visitor is let through on first request", func(t *testing.T) {
		st := storage.NewMemory()
		require.NoError(t, st.Set(ctx, guard.DefaultKey, []byte(`{"token":"tok123","role":"super_user"}`)))

		g := guard.New(st)
		w := serve(g, guard.Requirement{AllowedRoles: []string{guard.RoleSuperUser}}, "/dashmanager")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, guard.RoleSuperUser, w.Header().Get("X-Role"))
	})

	t.Run("wrong role goes home", func(t *testing.T) {
		g := restored(t, storage.NewMemory())
		require.NoError(t, g.Login(ctx, "tok", guard.RoleBasic))

		w := serve(g, guard.Requirement{AllowedRoles: []string{guard.RoleSuperUser}}, "/dashmanager")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("logged-in visitor skips login page", func(t *testing.T) {
		g := restored(t, storage.NewMemory())
		require.NoError(t, g.Login(ctx, "tok", guard.RoleBasic))

		w := serve(g, guard.Requirement{GuestOnly: true}, "/login")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("resolver failure", func(t *testing.T) {
		resolve := func(*http.Request) (*guard.Guard, error) { return nil, errors.New("boom") }
		h := guard.Middleware(resolve, guard.Requirement{})(page(t))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
