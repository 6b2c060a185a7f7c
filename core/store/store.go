package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dmitrymomot/lrucache/core/cache"
	"github.com/dmitrymomot/lrucache/core/logger"
	"github.com/dmitrymomot/lrucache/core/metrics"
)

// Entry is a single key/value pair of a snapshot.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Store is a fixed-capacity text cache shared by all transports of a process.
// It validates input, reports misses as ErrNotFound and instruments every
// operation. Safe for concurrent use.
type Store struct {
	lru     *cache.LRUCache[string, string]
	logger  *slog.Logger
	metrics *metrics.Metrics
	changes Changes
	closed  atomic.Bool
}

// New creates a store that holds at most capacity entries.
func New(capacity int, opts ...Option) (*Store, error) {
	lru, err := cache.NewLRUCache[string, string](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create store with capacity %d: %w", capacity, err)
	}

	s := &Store{
		lru:    lru,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	lru.SetEvictCallback(s.onEvict)
	if s.metrics != nil {
		s.metrics.UpdateSize(0, capacity)
		lru.SetSizeObserver(func(size int) {
			s.metrics.UpdateSize(size, capacity)
		})
	}

	s.logger.Info("cache store created", logger.Component("store"), logger.Capacity(capacity))
	return s, nil
}

// Get returns the value held under key and marks it most recently used.
// A miss returns ErrNotFound and leaves the recency order untouched.
func (s *Store) Get(key string) (string, error) {
	if !validText(key) {
		return "", ErrInvalidInput
	}

	v, ok, err := s.lru.Lookup(key)
	if err != nil {
		return "", ErrClosed
	}
	if s.metrics != nil {
		s.metrics.RecordGet(ok)
	}
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Put inserts or replaces the value under key and marks it most recently used.
// When the store is full, the least recently used entry is evicted first.
func (s *Store) Put(key, value string) error {
	if !validText(key) || !validText(value) {
		if s.metrics != nil {
			s.metrics.RecordPut(metrics.PutRejected)
		}
		s.logger.Debug("put rejected", logger.Component("store"), logger.CacheKey(key), logger.Error(ErrInvalidInput))
		return ErrInvalidInput
	}

	inserted, err := s.lru.Put(key, value)
	if err != nil {
		return err
	}

	if s.metrics != nil {
		if inserted {
			s.metrics.RecordPut(metrics.PutInserted)
		} else {
			s.metrics.RecordPut(metrics.PutUpdated)
		}
	}
	s.publish(ChangePut, key)
	return nil
}

// Snapshot returns every entry ordered from most to least recently used.
// The recency order is not changed.
func (s *Store) Snapshot() []Entry {
	entries := s.lru.Entries()
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Key: e.Key, Value: e.Value}
	}
	if s.metrics != nil {
		s.metrics.RecordSnapshot()
	}
	return out
}

// Len returns the number of entries held.
func (s *Store) Len() int {
	return s.lru.Len()
}

// Capacity returns the maximum number of entries.
func (s *Store) Capacity() int {
	return s.lru.Cap()
}

// Ping reports whether the store can serve requests. Used as a readiness check.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Close releases all entries. Further Put calls fail with ErrClosed.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if err := s.lru.Close(); err != nil {
		return err
	}
	s.logger.Info("cache store closed", logger.Component("store"))
	return nil
}

// validText reports whether s can be held: non-empty UTF-8, so every export
// renders distinct keys as distinct strings.
func validText(s string) bool {
	return s != "" && utf8.ValidString(s)
}

func (s *Store) onEvict(key, _ string) {
	if s.metrics != nil {
		s.metrics.RecordEviction()
	}
	s.logger.Debug("entry evicted", logger.Component("store"), logger.Event("evict"), logger.CacheKey(key))
	s.publish(ChangeEvict, key)
}
