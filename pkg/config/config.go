package config

import (
	"errors"
	"time"

	"github.com/dashmarket/storefront/pkg/backend"
	"github.com/dashmarket/storefront/pkg/httpserver"
	"github.com/dashmarket/storefront/pkg/ratelimiter"
	"github.com/dashmarket/storefront/pkg/storage"
	"github.com/dashmarket/storefront/pkg/visitor"
)

type App struct {
	Name string `env:"APP_NAME" envDefault:"storefront"`
	Env  string `env:"APP_ENV" envDefault:"development"`
}

// Clients bounds the number of visitors whose cart and session stay in
// memory. Evicted visitors are rebuilt from storage on their next request.
type Clients struct {
	Capacity int `env:"CLIENTS_CAPACITY" envDefault:"10000"`
	// LoadTimeout bounds hydrating a visitor's cart and session from storage.
	LoadTimeout time.Duration `env:"CLIENTS_LOAD_TIMEOUT" envDefault:"5s"`
}

type Config struct {
	App     App
	HTTP    httpserver.Config
	Storage storage.Config
	Backend backend.Config
	Visitor visitor.Config
	Clients Clients

	LoginLimit ratelimiter.Config

	// RoutesFile optionally replaces the built-in route table with a YAML file.
	RoutesFile string `env:"ROUTES_FILE"`
}

// Validate checks the values env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case storage.DriverMemory, storage.DriverFile, storage.DriverRedis:
	default:
		errs = append(errs, ErrUnknownDriver)
	}
	if c.Clients.Capacity <= 0 {
		errs = append(errs, ErrInvalidCapacity)
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
