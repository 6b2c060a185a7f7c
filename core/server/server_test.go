package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lrucache/core/logger"
	"github.com/dmitrymomot/lrucache/core/server"
)

var hello = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("hello"))
})

// waitForAddr polls until the server has bound its listener.
func waitForAddr(t *testing.T, srv *server.Server) string {
	t.Helper()
	var addr string
	require.Eventually(t, func() bool {
		addr = srv.Addr()
		return addr != "127.0.0.1:0"
	}, 2*time.Second, 5*time.Millisecond)
	return addr
}

func TestServer_RunAndShutdown(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0",
		server.WithLogger(logger.Nop()),
		server.WithShutdownTimeout(time.Second),
		server.WithReadTimeout(time.Second),
		server.WithWriteTimeout(time.Second),
		server.WithIdleTimeout(time.Second),
		server.WithMaxHeaderBytes(4096),
	)

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(gctx, hello))

	addr := waitForAddr(t, srv)

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	cancel()
	require.NoError(t, g.Wait())

	_, err = http.Get("http://" + addr + "/")
	assert.Error(t, err, "server should no longer accept connections")
}

func TestServer_AlreadyRunning(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx, hello) }()
	waitForAddr(t, srv)

	assert.ErrorIs(t, srv.Start(ctx, hello), server.ErrServerAlreadyRunning)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop(), "stop must be idempotent")
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	first := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = first.Start(ctx, hello) }()
	addr := waitForAddr(t, first)
	defer first.Stop()

	second := server.New(addr)
	err := second.Run(context.Background(), hello)()
	assert.ErrorIs(t, err, server.ErrListen)
}

func TestServer_StopWithoutStart(t *testing.T) {
	t.Parallel()

	srv := server.New(":0")
	assert.NoError(t, srv.Stop())
	assert.Equal(t, ":0", srv.Addr())
}
