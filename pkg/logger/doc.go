// Package logger builds configured slog.Logger instances with optional
// context attribute injection.
//
// Defaults are production-safe: JSON output at info level to stdout. Options
// adjust level, format, destination, and static attributes; NewFromEnv reads
// LOG_LEVEL and LOG_FORMAT instead.
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithAttr(slog.String("service", "gatekit")),
//	    logger.WithContextExtractors(logger.TierExtractor),
//	)
//
// Context extractors run per log call, so request-scoped values such as the
// tenant's plan tier appear on every record logged with that request's
// context.
package logger
