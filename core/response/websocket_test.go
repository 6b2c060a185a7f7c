package response_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lrucache/core/response"
)

func wsServer(t *testing.T, resp func(w http.ResponseWriter, r *http.Request) error) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = resp(w, r)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebSocket_Echo(t *testing.T) {
	t.Parallel()

	url := wsServer(t, response.WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return nil
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return err
			}
		}
	}, response.WithWSAllowAnyOrigin()))

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, mt)
	assert.Equal(t, "ping", string(data))
}

func TestWebSocket_SmallBuffers(t *testing.T) {
	t.Parallel()

	big := strings.Repeat("x", 4096)
	url := wsServer(t, response.WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
		return conn.WriteMessage(websocket.TextMessage, []byte(big))
	},
		response.WithWSAllowAnyOrigin(),
		response.WithWSReadBuffer(64),
		response.WithWSWriteBuffer(256),
	))

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, big, string(data), "messages larger than the write buffer arrive whole")
}

func TestWebSocket_Callbacks(t *testing.T) {
	t.Parallel()

	connected := make(chan struct{})
	disconnected := make(chan struct{})

	url := wsServer(t, response.WebSocket(
		func(ctx context.Context, conn *websocket.Conn) error {
			return conn.WriteMessage(websocket.TextMessage, []byte("bye"))
		},
		response.WithWSAllowAnyOrigin(),
		response.WithWSOnConnect(func(context.Context, *websocket.Conn) error {
			close(connected)
			return nil
		}),
		response.WithWSOnDisconnect(func(context.Context, *websocket.Conn) {
			close(disconnected)
		}),
	))

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("onConnect was not called")
	}
	select {
	case <-disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("onDisconnect was not called")
	}
}

func TestWebSocket_OriginCheck(t *testing.T) {
	t.Parallel()

	errCh := make(chan error, 1)
	url := wsServer(t, response.WebSocket(
		func(context.Context, *websocket.Conn) error { return nil },
		response.WithWSOriginCheck(func(*http.Request) bool { return false }),
		response.WithWSErrorHandler(func(_ context.Context, err error) { errCh <- err }),
	))

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("error handler was not called")
	}
}

func TestWebSocket_PlainRequestRejected(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	resp := response.WebSocket(func(context.Context, *websocket.Conn) error { return nil })
	require.NoError(t, resp(w, httptest.NewRequest(http.MethodGet, "/ws", nil)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
