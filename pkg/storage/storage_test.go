package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmarket/storefront/pkg/storage"
)

// exercise runs the behaviour every back-end must share.
func exercise(t *testing.T, s storage.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "cart", []byte(`{"version":1}`)))

		got, err := s.Get(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, `{"version":1}`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "session", []byte("a")))
		require.NoError(t, s.Set(ctx, "session", []byte("b")))

		got, err := s.Get(ctx, "session")
		require.NoError(t, err)
		assert.Equal(t, "b", string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "gone", []byte("x")))
		require.NoError(t, s.Delete(ctx, "gone"))

		_, err := s.Get(ctx, "gone")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete missing key", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "never-set"))
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := s.Get(ctx, "")
		assert.ErrorIs(t, err, storage.ErrEmptyKey)
		assert.ErrorIs(t, s.Set(ctx, "", []byte("x")), storage.ErrEmptyKey)
		assert.ErrorIs(t, s.Delete(ctx, ""), storage.ErrEmptyKey)
	})
}

func TestMemory(t *testing.T) {
	exercise(t, storage.NewMemory())

	t.Run("value isolation", func(t *testing.T) {
		s := storage.NewMemory()
		ctx := context.Background()

		val := []byte("original")
		require.NoError(t, s.Set(ctx, "k", val))
		val[0] = 'X'

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "original", string(got))

		got[0] = 'Y'
		again, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "original", string(again))
	})
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewFile(dir)
	require.NoError(t, err)

	exercise(t, s)

	t.Run("survives reopen", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "visitor:abc:cart", []byte("snapshot")))

		reopened, err := storage.NewFile(dir)
		require.NoError(t, err)

		got, err := reopened.Get(ctx, "visitor:abc:cart")
		require.NoError(t, err)
		assert.Equal(t, "snapshot", string(got))
	})

	t.Run("keys cannot escape directory", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "../outside", []byte("x")))

		_, err := os.Stat(filepath.Join(filepath.Dir(dir), "outside.rec"))
		assert.True(t, os.IsNotExist(err))

		assert.ErrorIs(t, s.Set(ctx, "..", []byte("x")), storage.ErrEmptyKey)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, storage.Healthcheck(s)(context.Background()))
	})

	t.Run("empty dir", func(t *testing.T) {
		_, err := storage.NewFile("")
		assert.ErrorIs(t, err, storage.ErrDirectoryMissing)
	})
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	base := storage.NewMemory()

	a := storage.Namespace(base, "visitor:a")
	b := storage.Namespace(base, "visitor:b")

	exercise(t, a)

	t.Run("isolation between namespaces", func(t *testing.T) {
		require.NoError(t, a.Set(ctx, "cart", []byte("a-cart")))

		_, err := b.Get(ctx, "cart")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		raw, err := base.Get(ctx, "visitor:a:cart")
		require.NoError(t, err)
		assert.Equal(t, "a-cart", string(raw))
	})

	t.Run("nested namespaces flatten", func(t *testing.T) {
		nested := storage.Namespace(storage.Namespace(base, "outer"), "inner")
		require.NoError(t, nested.Set(ctx, "k", []byte("v")))

		raw, err := base.Get(ctx, "outer:inner:k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(raw))
	})

	t.Run("empty prefix returns base", func(t *testing.T) {
		assert.Same(t, base, storage.Namespace(base, ""))
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory by default", func(t *testing.T) {
		s, closeFn, err := storage.Open(ctx, storage.Config{})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &storage.Memory{}, s)
	})

	t.Run("file", func(t *testing.T) {
		s, closeFn, err := storage.Open(ctx, storage.Config{Driver: storage.DriverFile, Dir: t.TempDir()})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &storage.File{}, s)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, closeFn, err := storage.Open(ctx, storage.Config{Driver: "etcd"})
		assert.ErrorIs(t, err, storage.ErrUnknownDriver)
		assert.NotNil(t, closeFn)
	})

	t.Run("bad redis url", func(t *testing.T) {
		_, _, err := storage.Open(ctx, storage.Config{
			Driver: storage.DriverRedis,
			Redis:  storage.RedisConfig{URL: "://nope", ConnectTimeout: time.Second},
		})
		assert.ErrorIs(t, err, storage.ErrRedisURL)
	})
}
