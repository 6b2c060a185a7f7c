// Package router adapts handler.HandlerFunc to net/http on top of http.ServeMux.
//
// Handlers return a handler.Response instead of writing to the response
// writer. The router renders that response, sends any returned error to the
// configured error handler, and recovers panics into a PanicError.
//
//	r := router.New(
//		router.WithErrorHandler(response.ErrorHandler),
//		router.WithLogger(log),
//	)
//	r.Use(middleware.RequestID(), middleware.Logging(log))
//
//	r.Get("/{$}", dashboard)
//	r.Get("/cache", snapshot)
//	r.Post("/set", set)
//	r.Mount("/metrics", m.Handler())
//
//	srv := &http.Server{Handler: r}
//
// Patterns use http.ServeMux syntax. Registering the same method and pattern
// twice panics, as does an invalid pattern.
//
// The response writer passed to handlers implements http.Flusher and
// http.Hijacker, so streaming and WebSocket upgrades work unchanged.
package router
