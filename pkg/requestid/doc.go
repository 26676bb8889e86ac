// Package requestid tags each HTTP request with a correlation ID.
//
// Middleware reuses a client-supplied X-Request-ID when it is made of
// letters, digits, '-' and '_' (at most 128 chars) and generates a UUID
// otherwise. The ID is echoed in the response and stored in the request
// context; LogExtractor lets pkg/logger attach it to every record:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor()))
//	r.Use(requestid.Middleware)
package requestid
