// Package cache provides a thread-safe, fixed-capacity LRU cache.
//
// LRUCache keeps entries in strict most-recently-used order and evicts exactly
// one entry, the least recently used one, whenever an insert would exceed the
// capacity. There is no time-based expiry.
//
// # Usage
//
//	import "github.com/dmitrymomot/lrucache/core/cache"
//
//	c, err := cache.NewLRUCache[string, string](100)
//	if err != nil {
//		return err // cache.ErrInvalidCapacity
//	}
//	defer c.Close()
//
//	_, _ = c.Put("user:123", "John")
//	if name, found := c.Get("user:123"); found {
//		fmt.Println(name)
//	}
//
//	// MRU -> LRU copy, does not touch the recency order
//	for _, e := range c.Entries() {
//		fmt.Println(e.Key, e.Value)
//	}
//
// # Eviction Callbacks
//
// Register a callback to observe capacity evictions:
//
//	c.SetEvictCallback(func(key string, value string) {
//		log.Info("evicted", "key", key)
//	})
//
// The callback runs after the internal lock is released. SetSizeObserver is
// the exception: it runs under the lock so gauges see sizes in order.
//
// # Performance Characteristics
//
//   - Get: O(1) average case
//   - Put: O(1) average case, including eviction
//   - Entries: O(n)
//   - Memory: O(capacity)
//
// The list is stored in a slice and linked by index, so promotions and
// evictions do not allocate once the cache has filled up.
package cache
