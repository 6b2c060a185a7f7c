// Package store implements the process-wide text cache behind every transport.
//
// A Store wraps a cache.LRUCache[string, string] and adds the contract the
// transports rely on: empty keys and values are rejected with ErrInvalidInput,
// a miss is reported as ErrNotFound, and snapshots come back as a slice of
// Entry values ordered from most to least recently used.
//
//	s, err := store.New(5,
//		store.WithLogger(log),
//		store.WithMetrics(metrics.New("lrucache")),
//	)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	_ = s.Put("a", "1")
//	v, err := s.Get("a")
//	switch {
//	case errors.Is(err, store.ErrNotFound):
//		// miss
//	case err != nil:
//		// misuse or closed store
//	}
//
// WithBroadcaster publishes a Change after every put and eviction:
//
//	changes := broadcast.NewMemoryBroadcaster[store.Change](16)
//	s, _ := store.New(5, store.WithBroadcaster(changes))
//	sub := changes.Subscribe(ctx)
//	for msg := range sub.Receive(ctx) {
//		fmt.Println(msg.Data.Op, msg.Data.Key)
//	}
//
// Construct one Store at startup and pass it to the HTTP and ZeroMQ
// transports. There is no package-level instance.
package store
