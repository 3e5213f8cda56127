package storage

import (
	"context"
	"errors"
)

// Storage is a durable key/value store for client-local records.
type Storage interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by back-ends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthcheck returns a probe for s. Back-ends without a Pinger are
// always healthy.
func Healthcheck(s Storage) func(context.Context) error {
	return func(ctx context.Context) error {
		p, ok := s.(Pinger)
		if !ok {
			return nil
		}
		if err := p.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheck, err)
		}
		return nil
	}
}
