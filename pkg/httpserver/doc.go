// Package httpserver runs an http.Server until its context ends, then
// drains in-flight requests within Config.ShutdownTimeout.
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	err := srv.Run(ctx, router)
package httpserver
