package store

import (
	"context"

	"github.com/dmitrymomot/lrucache/pkg/broadcast"
)

// ChangeOp identifies what modified the store.
type ChangeOp string

const (
	ChangePut   ChangeOp = "put"
	ChangeEvict ChangeOp = "evict"
)

// Change is published after every successful put and every eviction.
type Change struct {
	Op  ChangeOp
	Key string
}

// Changes is the broadcaster type accepted by WithBroadcaster.
type Changes = broadcast.Broadcaster[Change]

func (s *Store) publish(op ChangeOp, key string) {
	if s.changes == nil {
		return
	}
	// Delivery is non-blocking; a closed broadcaster only means nobody listens.
	_ = s.changes.Broadcast(context.Background(), broadcast.Message[Change]{
		Data: Change{Op: op, Key: key},
	})
}
