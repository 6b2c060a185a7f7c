package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lrucache/core/response"
)

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		status   int
		expected int
	}{
		{name: "ok", content: "a=1\n", status: http.StatusOK, expected: http.StatusOK},
		{name: "empty body", content: "", status: http.StatusOK, expected: http.StatusOK},
		{name: "not found", content: "k=(null)\n", status: http.StatusNotFound, expected: http.StatusNotFound},
		{name: "zero status defaults to ok", content: "x", status: 0, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			err := response.StringWithStatus(tt.content, tt.status)(w, httptest.NewRequest(http.MethodGet, "/", nil))

			require.NoError(t, err)
			assert.Equal(t, tt.expected, w.Code)
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.content, w.Body.String())
		})
	}
}

func TestHTMLAndBytes(t *testing.T) {
	t.Parallel()

	t.Run("html", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, response.HTML("<p>hi</p>")(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hi</p>", w.Body.String())
	})

	t.Run("bytes with custom type", func(t *testing.T) {
		w := httptest.NewRecorder()
		resp := response.BytesWithStatus([]byte{1, 2, 3}, "application/octet-stream", http.StatusAccepted)
		require.NoError(t, resp(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, []byte{1, 2, 3}, w.Body.Bytes())
	})

	t.Run("no content", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, response.NoContent()(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes value", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := response.JSON(map[string]string{"key": "a\"b"})(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"key":"a\"b"}`, w.Body.String())
	})

	t.Run("nil with zero status is no content", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, response.JSONWithStatus(nil, 0)(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("error becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		response.Render(w, httptest.NewRequest(http.MethodGet, "/", nil), response.Error(errors.New("boom")))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "boom")
	})

	t.Run("nil response becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		response.Render(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
