package config

import "errors"

var (
	ErrParsingConfig   = errors.New("config.parse_failed")
	ErrLoadingEnvFile  = errors.New("config.env_file")
	ErrInvalidConfig   = errors.New("config.invalid")
	ErrUnknownDriver   = errors.New("config.unknown_storage_driver")
	ErrInvalidCapacity = errors.New("config.invalid_clients_capacity")
)
