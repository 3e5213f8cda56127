// Package logger builds the storefront's *slog.Logger.
//
// New takes functional options: output format and level, static attributes
// and ContextExtractor callbacks that pull request-scoped values (request
// ID, visitor ID) out of the context on every Handle call.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.App.Env, cfg.App.Name),
//	    logger.WithContextExtractors(logger.RequestIDExtractor, logger.VisitorIDExtractor),
//	)
//	log.InfoContext(ctx, "item added", logger.ItemID(id))
//
// Attribute helpers in attr.go keep key names consistent. Error and Errors
// return an empty Attr for nil errors, so callers can log without a nil check.
package logger
