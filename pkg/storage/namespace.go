package storage

import (
	"context"
	"strings"
)

const namespaceSeparator = ":"

type namespaced struct {
	base   Storage
	prefix string
}

// Namespace returns a view of base whose keys are prefixed with prefix.
// Nested namespaces are joined with ":".
func Namespace(base Storage, prefix string) Storage {
	prefix = strings.Trim(prefix, namespaceSeparator)
	if prefix == "" {
		return base
	}
	if n, ok := base.(*namespaced); ok {
		return &namespaced{base: n.base, prefix: n.prefix + namespaceSeparator + prefix}
	}
	return &namespaced{base: base, prefix: prefix}
}

func (n *namespaced) key(k string) (string, error) {
	if k == "" {
		return "", ErrEmptyKey
	}
	return n.prefix + namespaceSeparator + k, nil
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	k, err := n.key(key)
	if err != nil {
		return nil, err
	}
	return n.base.Get(ctx, k)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	k, err := n.key(key)
	if err != nil {
		return err
	}
	return n.base.Set(ctx, k, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	k, err := n.key(key)
	if err != nil {
		return err
	}
	return n.base.Delete(ctx, k)
}

func (n *namespaced) Ping(ctx context.Context) error {
	if p, ok := n.base.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
