// Package logger builds the application's *slog.Logger.
//
// New applies functional options on top of production defaults (JSON, info
// level, stdout) and wraps the handler in a decorator that copies request
// scoped values, such as the request id, from the context into every record.
//
// Attribute helpers keep key names consistent across packages:
//
//	log.WarnContext(ctx, "access denied",
//		logger.Path(r.URL.Path),
//		logger.Role(sess.Role()),
//		logger.Reason(string(decision.Reason)),
//	)
//
// Helpers that take an optional value return an empty slog.Attr for nil input,
// which slog drops, so callers never need a nil check.
package logger
