// Package broadcast is a small generic pub/sub used to fan out events inside
// one process.
//
// A Broadcaster delivers every Message to all current subscribers. Delivery
// never blocks the publisher: each subscriber owns a buffered channel, and a
// message that does not fit is dropped for that subscriber alone. Consumers
// that only need to know "something changed" can rely on this; consumers
// that need every message should size the buffer accordingly.
//
//	changes := broadcast.NewMemoryBroadcaster[store.Change](16)
//	defer changes.Close()
//
//	sub := changes.Subscribe(ctx) // removed when ctx is canceled
//	defer sub.Close()
//
//	for msg := range sub.Receive(ctx) {
//		log.Info("cache changed", "op", msg.Data.Op, "key", msg.Data.Key)
//	}
//
// Broadcast returns ErrBroadcasterClosed after Close and the context error
// when ctx is already canceled. Closing the broadcaster closes every
// subscriber channel. Close is idempotent on both types.
package broadcast
