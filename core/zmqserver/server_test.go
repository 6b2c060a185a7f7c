package zmqserver_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lrucache/core/store"
	"github.com/dmitrymomot/lrucache/core/zmqserver"
)

func newStore(t *testing.T, capacity int) *store.Store {
	t.Helper()
	st, err := store.New(capacity)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func handle(t *testing.T, srv *zmqserver.Server, frame string) zmqserver.Reply {
	t.Helper()
	var reply zmqserver.Reply
	require.NoError(t, json.Unmarshal(srv.Handle([]byte(frame)), &reply))
	return reply
}

func TestServer_Handle(t *testing.T) {
	t.Parallel()

	st := newStore(t, 2)
	srv := zmqserver.New("tcp://127.0.0.1:0", st)

	tests := []struct {
		name     string
		frame    string
		wantOK   bool
		wantCode string
		wantVal  string
	}{
		{name: "put", frame: `{"op":"put","key":"a","value":"1"}`, wantOK: true},
		{name: "get hit", frame: `{"op":"get","key":"a"}`, wantOK: true, wantVal: "1"},
		{name: "get miss", frame: `{"op":"get","key":"zz"}`, wantCode: zmqserver.CodeNotFound},
		{name: "put empty value", frame: `{"op":"put","key":"a"}`, wantCode: zmqserver.CodeInvalidInput},
		{name: "get empty key", frame: `{"op":"get"}`, wantCode: zmqserver.CodeInvalidInput},
		{name: "malformed", frame: `{"op":`, wantCode: zmqserver.CodeBadRequest},
		{name: "missing op", frame: `{}`, wantCode: zmqserver.CodeBadRequest},
		{name: "unknown op", frame: `{"op":"delete","key":"a"}`, wantCode: zmqserver.CodeUnknownOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := handle(t, srv, tt.frame)
			assert.Equal(t, tt.wantOK, reply.OK)
			assert.Equal(t, tt.wantVal, reply.Value)
			if tt.wantCode == "" {
				assert.Nil(t, reply.Error)
				return
			}
			require.NotNil(t, reply.Error)
			assert.Equal(t, tt.wantCode, reply.Error.Code)
			assert.NotEmpty(t, reply.Error.Message)
		})
	}
}

func TestServer_HandleSnapshotOrder(t *testing.T) {
	t.Parallel()

	st := newStore(t, 3)
	srv := zmqserver.New("tcp://127.0.0.1:0", st)

	for _, k := range []string{"a", "b", "c", "d"} {
		require.True(t, handle(t, srv, `{"op":"put","key":"`+k+`","value":"v`+k+`"}`).OK)
	}

	reply := handle(t, srv, `{"op":"snapshot"}`)
	require.True(t, reply.OK)
	assert.Equal(t, []store.Entry{
		{Key: "d", Value: "vd"},
		{Key: "c", Value: "vc"},
		{Key: "b", Value: "vb"},
	}, reply.Entries)
}

func TestServer_HandleClosedStore(t *testing.T) {
	t.Parallel()

	st, err := store.New(1)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	reply := handle(t, zmqserver.New("tcp://127.0.0.1:0", st), `{"op":"put","key":"a","value":"1"}`)
	require.NotNil(t, reply.Error)
	assert.Equal(t, zmqserver.CodeClosed, reply.Error.Code)
}

func TestServer_RoundTrip(t *testing.T) {
	t.Parallel()

	st := newStore(t, 5)
	srv := zmqserver.New("tcp://127.0.0.1:0", st)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx)() }()

	require.Eventually(t, func() bool {
		return srv.Addr() != "tcp://127.0.0.1:0"
	}, 2*time.Second, 5*time.Millisecond)

	client, err := zmqserver.Dial(ctx, srv.Addr())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Put("a", "1"))
	require.NoError(t, client.Put("b", `quote " and \ slash`))

	v, err := client.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	_, err = client.Get("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, client.Put("", "x"), store.ErrInvalidInput)

	entries, err := client.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []store.Entry{
		{Key: "a", Value: "1"},
		{Key: "b", Value: `quote " and \ slash`},
	}, entries)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_AlreadyRunning(t *testing.T) {
	t.Parallel()

	srv := zmqserver.New("tcp://127.0.0.1:0", newStore(t, 1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Start(ctx) }()
	require.Eventually(t, func() bool {
		return srv.Addr() != "tcp://127.0.0.1:0"
	}, 2*time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, srv.Start(ctx), zmqserver.ErrServerAlreadyRunning)
}
