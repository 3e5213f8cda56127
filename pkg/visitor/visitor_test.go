package visitor_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmarket/storefront/pkg/visitor"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

func newManager(t *testing.T, secrets ...string) *visitor.Manager {
	t.Helper()
	m, err := visitor.New(visitor.Config{CookieName: "vid", Secrets: secrets})
	require.NoError(t, err)
	return m
}

func cookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestNew(t *testing.T) {
	_, err := visitor.New(visitor.Config{})
	assert.ErrorIs(t, err, visitor.ErrNoSecret)

	_, err = visitor.New(visitor.Config{Secrets: []string{"", ""}})
	assert.ErrorIs(t, err, visitor.ErrNoSecret)

	_, err = visitor.New(visitor.Config{Secrets: []string{"short"}})
	assert.ErrorIs(t, err, visitor.ErrSecretTooShort)
}

func TestManager_Identify(t *testing.T) {
	m := newManager(t, secret)

	t.Run("issues id for new visitor", func(t *testing.T) {
		w := httptest.NewRecorder()
		id, fresh := m.Identify(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, fresh)
		assert.NotEqual(t, uuid.Nil, id)

		c := cookieFrom(t, w)
		assert.Equal(t, "vid", c.Name)
		assert.True(t, c.HttpOnly)
		assert.True(t, strings.HasPrefix(c.Value, id.String()+"."))
	})

	t.Run("recognises returning visitor", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		id1, _ := m.Identify(w1, httptest.NewRequest(http.MethodGet, "/", nil))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookieFrom(t, w1))
		w2 := httptest.NewRecorder()
		id2, fresh := m.Identify(w2, r)

		assert.False(t, fresh)
		assert.Equal(t, id1, id2)
		assert.Empty(t, w2.Result().Cookies())
	})

	t.Run("forged id is replaced", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		m.Identify(w1, httptest.NewRequest(http.MethodGet, "/", nil))
		sig := strings.SplitN(cookieFrom(t, w1).Value, ".", 2)[1]

		victim := uuid.New()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "vid", Value: victim.String() + "." + sig})

		id, fresh := m.Identify(httptest.NewRecorder(), r)
		assert.True(t, fresh)
		assert.NotEqual(t, victim, id)
	})

	t.Run("garbage cookie is replaced", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "vid", Value: "not-a-cookie"})

		_, fresh := m.Identify(httptest.NewRecorder(), r)
		assert.True(t, fresh)
	})
}

func TestManager_KeyRotation(t *testing.T) {
	old := newManager(t, oldSecret)
	w := httptest.NewRecorder()
	id, _ := old.Identify(w, httptest.NewRequest(http.MethodGet, "/", nil))

	rotated := newManager(t, secret, oldSecret)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookieFrom(t, w))

	got, fresh := rotated.Identify(httptest.NewRecorder(), r)
	assert.False(t, fresh)
	assert.Equal(t, id, got)
}

func TestManager_Middleware(t *testing.T) {
	m := newManager(t, secret)

	var seen uuid.UUID
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor.FromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEqual(t, uuid.Nil, seen)
	assert.True(t, strings.HasPrefix(cookieFrom(t, w).Value, seen.String()))
}
