// Package requestid tags every HTTP request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or
// generates a UUID, stores it in the request context and echoes it in the
// response. Remote validation calls and their log records can then be
// matched with the page request that rendered the form.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware())
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
