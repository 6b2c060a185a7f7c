// Package server wraps http.Server with graceful shutdown, functional options
// and defaults suitable for production.
//
//	srv := server.New(":8080",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	if err := g.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns a func() error for errgroup. It starts the server, and when the
// context is canceled it calls Stop, which waits up to the shutdown timeout
// for in-flight requests.
//
// NewFromConfig builds a server from Config, which is loaded from the
// environment (HTTP_ADDR, HTTP_READ_TIMEOUT, HTTP_READ_HEADER_TIMEOUT,
// HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT,
// HTTP_MAX_HEADER_BYTES, HTTP_TLS_CERT_FILE, HTTP_TLS_KEY_FILE).
//
// Addr reports the bound address, so tests can listen on ":0".
package server
