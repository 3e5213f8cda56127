package storage

import (
	"context"
	"time"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

type RedisConfig struct {
	URL            string        `env:"STORAGE_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"STORAGE_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"STORAGE_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"STORAGE_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// TTL bounds how long an idle visitor's records survive (0 keeps them forever)
	TTL time.Duration `env:"STORAGE_REDIS_TTL" envDefault:"720h"`
}

type Config struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	Dir    string `env:"STORAGE_DIR" envDefault:"./data"`
	Redis  RedisConfig
}

// Open builds the configured back-end. The returned close function releases
// its resources and is never nil.
func Open(ctx context.Context, cfg Config) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), noop, nil
	case DriverFile:
		s, err := NewFile(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case DriverRedis:
		client, err := Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		s := NewRedis(client, cfg.Redis.TTL)
		return s, s.Close, nil
	default:
		return nil, noop, ErrUnknownDriver
	}
}
