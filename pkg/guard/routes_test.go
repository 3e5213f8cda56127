package guard_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmarket/storefront/pkg/guard"
)

func TestLoadRoutes(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		routes, err := guard.LoadRoutes(strings.NewReader(`
routes:
  - path: /
  - path: /login
    guest_only: true
  - path: /dashmanager
    require_auth: true
    allowed_roles: [super_user]
`))
		require.NoError(t, err)
		require.Len(t, routes, 3)

		assert.Equal(t, "/", routes[0].Path)
		assert.Equal(t, guard.Requirement{}, routes[0].Requirement)
		assert.True(t, routes[1].GuestOnly)
		assert.True(t, routes[2].RequireAuth)
		assert.Equal(t, []string{"super_user"}, routes[2].AllowedRoles)
	})

	t.Run("relative path", func(t *testing.T) {
		_, err := guard.LoadRoutes(strings.NewReader("routes:\n  - path: cart\n"))
		assert.ErrorIs(t, err, guard.ErrInvalidRoute)
	})

	t.Run("guest route with roles", func(t *testing.T) {
		_, err := guard.LoadRoutes(strings.NewReader("routes:\n  - path: /login\n    guest_only: true\n    require_auth: true\n"))
		assert.ErrorIs(t, err, guard.ErrInvalidRoute)
	})

	t.Run("duplicate path", func(t *testing.T) {
		_, err := guard.LoadRoutes(strings.NewReader("routes:\n  - path: /cart\n  - path: /cart\n"))
		assert.ErrorIs(t, err, guard.ErrInvalidRoute)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := guard.LoadRoutes(strings.NewReader(""))
		assert.ErrorIs(t, err, guard.ErrInvalidRoute)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := guard.LoadRoutes(strings.NewReader("routes: [\n"))
		assert.ErrorIs(t, err, guard.ErrInvalidRoute)
	})
}

func TestDefaultRoutes(t *testing.T) {
	byPath := map[string]guard.Requirement{}
	for _, r := range guard.DefaultRoutes() {
		byPath[r.Path] = r.Requirement
	}

	assert.Equal(t, guard.Requirement{}, byPath["/cart"])
	assert.True(t, byPath["/login"].GuestOnly)
	assert.True(t, byPath["/checkout"].RequireAuth)
	assert.Equal(t, []string{guard.RoleSuperUser}, byPath["/dashmanager"].AllowedRoles)
}
