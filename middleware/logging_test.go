package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lrucache/middleware"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))

			h := middleware.RequestID()(middleware.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/get?key=a", nil))

			rec := decodeRecord(t, &buf)
			assert.Equal(t, tt.wantLevel, rec["level"])
			assert.Equal(t, "HTTP request completed", rec["msg"])
			assert.Equal(t, "GET", rec["method"])
			assert.Equal(t, "/get", rec["path"])
			assert.Equal(t, "key=a", rec["query"])
			assert.EqualValues(t, tt.status, rec["status_code"])
			assert.EqualValues(t, 4, rec["bytes_out"])
			assert.NotEmpty(t, rec["request_id"])
		})
	}
}

func TestLogging_Skip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger: slog.New(slog.NewJSONHandler(&buf, nil)),
		Skip:   func(r *http.Request) bool { return r.URL.Path == "/health/live" },
	})
	mw(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Zero(t, buf.Len())
}

func TestLogging_PreservesHijacker(t *testing.T) {
	t.Parallel()

	var isHijacker bool
	h := middleware.Logging(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, isHijacker = w.(http.Hijacker)
	}))

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.True(t, isHijacker)
}
