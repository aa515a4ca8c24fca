// Package logger builds *slog.Logger instances with a small set of functional
// options and provides attribute helpers so that key names stay consistent
// across packages.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result with ContextHandler, which injects attributes pulled from the
// context.Context on every record (for example a request id).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "formguard-demo"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.WarnContext(ctx, "token rejected",
//	    logger.Component("csrf"),
//	    logger.Reason("expired"),
//	)
//
// Libraries in this module default to Noop so that they stay silent unless a
// logger is supplied.
//
// Error returns an empty attribute for a nil error, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
