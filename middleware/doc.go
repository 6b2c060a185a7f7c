// Package middleware provides net/http middleware for request IDs, request
// logging and request body limits.
//
// All middleware follow the same pattern: a default constructor, a WithConfig
// constructor taking a configuration struct, and an optional Skip function.
//
//	r := router.New()
//	r.Use(
//		middleware.RequestID(),
//		middleware.Logging(log),
//		middleware.BodyLimit(64*middleware.KB),
//	)
//
// RequestID stores the ID in the request context, where Logging picks it up:
//
//	id, ok := middleware.GetRequestID(r.Context())
package middleware
