// Package logger builds *slog.Logger instances for the jsvalidation services
// and defines the attribute helpers used across packages, so log keys stay
// consistent ("attribute", "rule", "form", "request_id").
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler with LogHandlerDecorator, which injects attributes extracted from
// the context on every record (for example the request id set by the
// requestid middleware).
//
//	log := logger.New(
//		logger.WithEnvironment("development", "jsvalidate"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.DebugContext(ctx, "rule skipped", logger.Attribute("email"), logger.Rule("foo"))
//
// Libraries in this module never log unless a logger is injected; Discard
// returns the no-op logger they default to.
package logger
