// Package logger builds log/slog loggers with per-environment defaults and
// context-driven attributes.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "twofactor"),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//		logger.WithContextExtractors(requestIDFromContext),
//	)
//	log.InfoContext(ctx, "enrollment started", logger.UserID(id), logger.Component("twofactor"))
//
// Extractors run on every record so request-scoped values are read at log
// time. The attribute helpers keep key names consistent across packages.
package logger
