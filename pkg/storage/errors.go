package storage

import "errors"

var (
	ErrNotFound         = errors.New("storage.not_found")
	ErrEmptyKey         = errors.New("storage.empty_key")
	ErrUnknownDriver    = errors.New("storage.unknown_driver")
	ErrRedisURL         = errors.New("storage.redis_url_invalid")
	ErrRedisNotReady    = errors.New("storage.redis_not_ready")
	ErrHealthcheck      = errors.New("storage.healthcheck_failed")
	ErrDirectoryMissing = errors.New("storage.directory_missing")
)
