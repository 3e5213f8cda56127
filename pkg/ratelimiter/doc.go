// Package ratelimiter throttles requests with in-memory token buckets.
//
// Each key (usually the client IP) owns a bucket of Capacity tokens that
// refills by RefillRate tokens every RefillInterval. Buckets live in an
// expiring LRU cache, so idle keys disappear without a cleanup goroutine
// and the number of tracked keys stays bounded.
//
//	limiter, _ := ratelimiter.New(cfg.LoginLimit)
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByIP, onLimit)).Post("/login", login)
package ratelimiter
