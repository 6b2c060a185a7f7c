package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/lrucache/core/handler"
)

// Route describes a single route in the router with its HTTP method and pattern.
// Method is empty for routes that accept any method.
type Route struct {
	Method  string
	Pattern string
}

// Router dispatches requests to handlers registered on an http.ServeMux.
//
// Patterns follow http.ServeMux syntax without the method prefix, for example
// "/cache" or "/{$}" for the exact root. Unknown paths get 404 and known paths
// with an unregistered method get 405 with an Allow header, both produced by
// the underlying ServeMux.
type Router struct {
	mux          *http.ServeMux
	middlewares  []handler.Middleware
	errorHandler handler.ErrorHandler
	logger       *slog.Logger

	once    sync.Once
	handler http.Handler

	mu     sync.RWMutex
	routes []Route
}

// New creates a new router with the given options.
func New(opts ...Option) *Router {
	r := &Router{
		mux:          http.NewServeMux(),
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ServeHTTP implements http.Handler interface.
// The middleware chain is built on the first request.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.once.Do(func() {
		var h http.Handler = rt.mux
		for i := len(rt.middlewares) - 1; i >= 0; i-- {
			h = rt.middlewares[i](h)
		}
		rt.handler = h
	})
	rt.handler.ServeHTTP(w, r)
}

// Use appends middleware to the router.
// Middlewares run in the order they were added, around every route including
// the ServeMux 404 and 405 responses. All middlewares must be added before the
// router serves its first request.
func (rt *Router) Use(middlewares ...handler.Middleware) {
	if rt.handler != nil {
		panic("router: all middlewares must be defined before serving requests")
	}
	rt.middlewares = append(rt.middlewares, middlewares...)
}

// Get registers a handler for GET requests. HEAD requests are served by the
// same handler.
func (rt *Router) Get(pattern string, h handler.HandlerFunc) {
	rt.Method(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (rt *Router) Post(pattern string, h handler.HandlerFunc) {
	rt.Method(http.MethodPost, pattern, h)
}

// Method registers a handler for a specific HTTP method.
func (rt *Router) Method(method, pattern string, h handler.HandlerFunc) {
	method = strings.ToUpper(method)
	if !slices.Contains(methods, method) {
		panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
	}
	rt.register(method, pattern, rt.wrap(h))
}

// Handle registers a handler for all HTTP methods.
func (rt *Router) Handle(pattern string, h handler.HandlerFunc) {
	rt.register("", pattern, rt.wrap(h))
}

// Mount registers a plain http.Handler for all HTTP methods, for handlers that
// already write their own response such as the Prometheus exporter.
func (rt *Router) Mount(pattern string, h http.Handler) {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilHandler, pattern))
	}
	rt.register("", pattern, h)
}

// Routes returns all registered routes in registration order.
func (rt *Router) Routes() []Route {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return slices.Clone(rt.routes)
}

func (rt *Router) register(method, pattern string, h http.Handler) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	full := pattern
	if method != "" {
		full = method + " " + pattern
	}
	rt.mux.Handle(full, h)

	rt.mu.Lock()
	rt.routes = append(rt.routes, Route{Method: method, Pattern: pattern})
	rt.mu.Unlock()
}

// wrap adapts a HandlerFunc to http.Handler. It renders the returned Response,
// routes errors to the error handler and converts panics into PanicError.
func (rt *Router) wrap(fn handler.HandlerFunc) http.Handler {
	if fn == nil {
		panic(ErrNilHandler)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)

		// Recover from panics to prevent server crashes
		defer func() {
			if p := recover(); p != nil {
				panicErr := &panicError{
					value: p,
					stack: debug.Stack(),
				}

				if ww.Written() {
					// Can't send error response, just log the panic
					rt.logger.Error("panic after response written",
						"value", panicErr.value,
						"stack", string(panicErr.stack),
						"path", r.URL.Path,
						"method", r.Method,
						"status", ww.Status(),
					)
					return
				}
				rt.errorHandler(ww, r, panicErr)
			}
		}()

		resp := fn(r)
		if resp == nil {
			rt.errorHandler(ww, r, ErrNilResponse)
			return
		}
		if err := resp(ww, r); err != nil {
			if ww.Written() {
				rt.logger.Error("response failed after headers were sent",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			rt.errorHandler(ww, r, err)
		}
	})
}

var methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}
