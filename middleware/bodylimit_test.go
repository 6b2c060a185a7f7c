package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lrucache/middleware"
)

func readAll(got *[]byte, gotErr *error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *gotErr = io.ReadAll(r.Body)
	})
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	t.Run("within limit", func(t *testing.T) {
		var body []byte
		var err error
		req := httptest.NewRequest(http.MethodPost, "/set", strings.NewReader("key=a&val=1"))
		middleware.BodyLimit(11)(readAll(&body, &err)).ServeHTTP(httptest.NewRecorder(), req)

		require.NoError(t, err)
		assert.Equal(t, "key=a&val=1", string(body))
	})

	t.Run("declared length too large", func(t *testing.T) {
		called := false
		req := httptest.NewRequest(http.MethodPost, "/set", strings.NewReader(strings.Repeat("x", 32)))
		w := httptest.NewRecorder()
		middleware.BodyLimit(16)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		})).ServeHTTP(w, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("streamed body too large", func(t *testing.T) {
		var body []byte
		var err error
		req := httptest.NewRequest(http.MethodPost, "/set", io.NopCloser(strings.NewReader(strings.Repeat("x", 32))))
		req.ContentLength = -1
		middleware.BodyLimit(16)(readAll(&body, &err)).ServeHTTP(httptest.NewRecorder(), req)

		var tooLarge *middleware.BodyTooLargeError
		require.True(t, errors.As(err, &tooLarge))
		assert.Equal(t, int64(16), tooLarge.Limit)
		assert.Equal(t, http.StatusRequestEntityTooLarge, tooLarge.StatusCode())
		assert.Len(t, body, 16)
	})

	t.Run("content type limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/set", strings.NewReader(`{"key":"a","value":"1"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()

		mw := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxSize:          middleware.MB,
			ContentTypeLimit: map[string]int64{"application/json": 8},
		})
		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
