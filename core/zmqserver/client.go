package zmqserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-zeromq/zmq4"

	"github.com/dmitrymomot/lrucache/core/store"
)

// Client talks to a Server over a REQ socket.
// REQ sockets are strictly send/receive, so calls are serialized.
type Client struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	sock   zmq4.Socket
}

// Dial connects a client to the server endpoint.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	sockCtx, cancel := context.WithCancel(ctx)
	sock := zmq4.NewReq(sockCtx)
	if err := sock.Dial(endpoint); err != nil {
		cancel()
		_ = sock.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	return &Client{cancel: cancel, sock: sock}, nil
}

// Get returns the value for key. A miss is reported as store.ErrNotFound.
func (c *Client) Get(key string) (string, error) {
	reply, err := c.do(Request{Op: OpGet, Key: key})
	if err != nil {
		return "", err
	}
	return reply.Value, nil
}

// Put stores value under key.
func (c *Client) Put(key, value string) error {
	_, err := c.do(Request{Op: OpPut, Key: key, Value: value})
	return err
}

// Snapshot returns the server's entries ordered from most to least recently used.
func (c *Client) Snapshot() ([]store.Entry, error) {
	reply, err := c.do(Request{Op: OpSnapshot})
	if err != nil {
		return nil, err
	}
	if reply.Entries == nil {
		return []store.Entry{}, nil
	}
	return reply.Entries, nil
}

// Close releases the socket.
func (c *Client) Close() error {
	c.cancel()
	return c.sock.Close()
}

func (c *Client) do(req Request) (Reply, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to encode request: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.sock.Send(zmq4.NewMsg(b)); err != nil {
		return Reply{}, fmt.Errorf("zmq send: %w", err)
	}
	msg, err := c.sock.Recv()
	if err != nil {
		return Reply{}, fmt.Errorf("zmq receive: %w", err)
	}

	var reply Reply
	if err := json.Unmarshal(msg.Bytes(), &reply); err != nil {
		return Reply{}, fmt.Errorf("failed to decode reply: %w", err)
	}
	if !reply.OK {
		return reply, replyError(reply.Error)
	}
	return reply, nil
}

// replyError maps a reply error back onto the store sentinels so callers can
// use errors.Is the same way they would against a local store.
func replyError(e *ReplyError) error {
	if e == nil {
		return errors.New("request failed without error detail")
	}
	switch e.Code {
	case CodeNotFound:
		return fmt.Errorf("%w: %w", store.ErrNotFound, e)
	case CodeInvalidInput:
		return fmt.Errorf("%w: %w", store.ErrInvalidInput, e)
	case CodeClosed:
		return fmt.Errorf("%w: %w", store.ErrClosed, e)
	default:
		return e
	}
}
