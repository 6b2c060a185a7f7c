package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the router's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc turns a request into a Response.
type HandlerFunc func(r *http.Request) Response

// ErrorHandler renders an error returned by a Response or raised by a panic.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware wraps an http.Handler to add cross-cutting functionality.
type Middleware func(next http.Handler) http.Handler
