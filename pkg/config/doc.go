// Package config loads the storefront configuration from the environment.
//
// An optional .env file is read first (github.com/joho/godotenv); variables
// already set in the process environment win. The result is parsed into
// Config with github.com/caarlos0/env/v11 struct tags. Each section lives
// next to the package that consumes it (storage.Config, backend.Config,
// visitor.Config) and is embedded here.
package config
