package broadcast

import (
	"context"
	"errors"
)

var (
	ErrBroadcasterClosed = errors.New("broadcaster is closed")
	ErrSubscriberClosed  = errors.New("subscriber is closed")
)

// Message wraps a broadcast payload.
type Message[T any] struct {
	Data T
}

// Broadcaster sends messages to every active subscriber.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber that is removed when ctx is canceled
	// or the subscriber is closed.
	Subscribe(ctx context.Context) Subscriber[T]
	// Broadcast delivers msg to all subscribers without blocking on slow ones.
	Broadcast(ctx context.Context, msg Message[T]) error
	Close() error
}

// Subscriber receives broadcast messages.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed when the subscriber
	// or the broadcaster is closed.
	Receive(ctx context.Context) <-chan Message[T]
	Close() error
}
