package middleware

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrymomot/lrucache/core/handler"
	"github.com/dmitrymomot/lrucache/core/response"
)

// Common size constants for convenience
const (
	KB int64 = 1024
	MB       = 1024 * KB
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// MaxSize is the maximum allowed size in bytes (default: 1MB)
	MaxSize int64

	// ContentTypeLimit allows setting different limits per content type
	// Example: {"application/json": 64 * KB}
	ContentTypeLimit map[string]int64

	// ErrorHandler renders requests whose declared Content-Length exceeds the
	// limit (default: response.ErrorHandler)
	ErrorHandler handler.ErrorHandler
}

// BodyLimit creates a body limit middleware with the given size limit.
func BodyLimit(maxSize int64) handler.Middleware {
	return BodyLimitWithConfig(BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig creates a body limit middleware with custom configuration.
//
// Requests that declare a Content-Length above the limit are rejected with
// 413 before the handler runs. Otherwise the body is wrapped so that reading
// past the limit fails with a *BodyTooLargeError, which carries status 413.
func BodyLimitWithConfig(cfg BodyLimitConfig) handler.Middleware {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = MB
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = response.ErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			maxSize := cfg.MaxSize
			if cfg.ContentTypeLimit != nil {
				if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
					if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
						maxSize = limit
					}
				}
			}

			if r.ContentLength > maxSize {
				cfg.ErrorHandler(w, r, response.ErrRequestEntityTooLarge.
					WithMessage(fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", maxSize)).
					WithDetails(map[string]any{"limit": maxSize, "size": r.ContentLength}))
				return
			}

			if r.Body != nil && r.Body != http.NoBody {
				r.Body = &limitedReader{reader: r.Body, limit: maxSize}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BodyTooLargeError is returned by a limited body once more than Limit bytes are read.
type BodyTooLargeError struct {
	Limit int64
}

func (e *BodyTooLargeError) Error() string {
	return fmt.Sprintf("request body size exceeds limit of %d bytes", e.Limit)
}

// StatusCode maps the error to 413 Request Entity Too Large.
func (e *BodyTooLargeError) StatusCode() int {
	return http.StatusRequestEntityTooLarge
}

// limitedReader wraps an io.ReadCloser to enforce a size limit
type limitedReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

// Read reads at most one byte past the limit so an exact-size body still
// reports io.EOF rather than an error.
func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read > lr.limit {
		return 0, &BodyTooLargeError{Limit: lr.limit}
	}

	if remaining := lr.limit - lr.read + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.reader.Read(p)
	lr.read += int64(n)
	if lr.read > lr.limit {
		return n - int(lr.read-lr.limit), &BodyTooLargeError{Limit: lr.limit}
	}
	return n, err
}

// Close implements io.Closer
func (lr *limitedReader) Close() error {
	return lr.reader.Close()
}
