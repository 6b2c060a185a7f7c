package cache

import "sync"

// nilIndex marks the absence of a neighbour in the node arena.
const nilIndex = -1

// Entry is a key/value pair copied out of the cache.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

type node[K comparable, V any] struct {
	key   K
	value V
	prev  int
	next  int
}

// LRUCache is a fixed-capacity cache with exact least-recently-used eviction.
//
// Entries live in a slice-backed doubly linked list ordered from most recently
// used (head) to least recently used (tail). The index maps keys to slots in
// that slice, so lookups, promotions and evictions never scan the list.
// Slots freed by eviction are recycled through a free list.
//
// A single mutex guards the index and the list. Get counts as a write because
// a hit moves the entry to the head.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	index    map[K]int
	nodes    []node[K, V]
	free     []int
	head     int
	tail     int
	onEvict  func(K, V)
	onSize   func(int)
	closed   bool
}

// NewLRUCache creates a cache that holds at most capacity entries.
// Returns ErrInvalidCapacity if capacity is less than one.
func NewLRUCache[K comparable, V any](capacity int) (*LRUCache[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	prealloc := min(capacity, maxPrealloc)
	return &LRUCache[K, V]{
		capacity: capacity,
		index:    make(map[K]int, prealloc),
		nodes:    make([]node[K, V], 0, prealloc),
		head:     nilIndex,
		tail:     nilIndex,
	}, nil
}

// maxPrealloc bounds the up-front allocation for very large capacities.
const maxPrealloc = 4096

// SetEvictCallback registers fn to be called for every entry removed to make
// room for a new key. The callback runs after the cache lock is released, so
// it may call back into the cache.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// SetSizeObserver registers fn to receive the new size after every insert and
// after Close. Unlike the evict callback it runs under the cache lock, so
// observed sizes arrive in the order they happened. fn must not block or call
// back into the cache.
func (c *LRUCache[K, V]) SetSizeObserver(fn func(size int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSize = fn
}

// Get returns the value stored under key and promotes it to most recently used.
// A miss leaves the cache untouched.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	v, ok, _ := c.Lookup(key)
	return v, ok
}

// Lookup is Get that also reports ErrClosed. The closed check and the lookup
// happen under the same lock, so a concurrent Close is never seen as a miss.
func (c *LRUCache[K, V]) Lookup(key K) (V, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	if c.closed {
		return zero, false, ErrClosed
	}

	i, ok := c.index[key]
	if !ok {
		return zero, false, nil
	}

	c.moveToFront(i)
	return c.nodes[i].value, true, nil
}

// Put stores value under key and promotes it to most recently used.
// It reports whether key was newly inserted rather than updated.
//
// Updating an existing key never changes the size. Inserting a new key into a
// full cache evicts exactly one entry, the least recently used one.
func (c *LRUCache[K, V]) Put(key K, value V) (bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, ErrClosed
	}

	if i, ok := c.index[key]; ok {
		c.nodes[i].value = value
		c.moveToFront(i)
		c.mu.Unlock()
		return false, nil
	}

	var (
		evicted    Entry[K, V]
		hasEvicted bool
	)
	if len(c.index) >= c.capacity {
		evicted = c.evictTail()
		hasEvicted = true
	}

	i := c.alloc(key, value)
	c.pushFront(i)
	c.index[key] = i
	if c.onSize != nil {
		c.onSize(len(c.index))
	}

	onEvict := c.onEvict
	c.mu.Unlock()

	if hasEvicted && onEvict != nil {
		onEvict(evicted.Key, evicted.Value)
	}
	return true, nil
}

// Entries returns a point-in-time copy of all entries ordered from most to
// least recently used. It does not change the recency order.
func (c *LRUCache[K, V]) Entries() []Entry[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	out := make([]Entry[K, V], 0, len(c.index))
	for i := c.head; i != nilIndex; i = c.nodes[i].next {
		out = append(out, Entry[K, V]{Key: c.nodes[i].key, Value: c.nodes[i].value})
	}
	return out
}

// Len returns the number of entries currently held.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Cap returns the capacity the cache was created with.
func (c *LRUCache[K, V]) Cap() int {
	return c.capacity
}

// Close drops all entries. Subsequent Put calls fail with ErrClosed and Get
// always misses. Close is safe to call multiple times.
func (c *LRUCache[K, V]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.index = map[K]int{}
	c.nodes = nil
	c.free = nil
	c.head = nilIndex
	c.tail = nilIndex
	c.onEvict = nil
	if c.onSize != nil {
		c.onSize(0)
		c.onSize = nil
	}
	return nil
}

// evictTail unlinks the least recently used entry and returns a copy of it.
// The caller must hold the lock and guarantee the cache is not empty.
func (c *LRUCache[K, V]) evictTail() Entry[K, V] {
	t := c.tail
	e := Entry[K, V]{Key: c.nodes[t].key, Value: c.nodes[t].value}
	c.unlink(t)
	delete(c.index, e.Key)
	c.release(t)
	return e
}

func (c *LRUCache[K, V]) alloc(key K, value V) int {
	n := node[K, V]{key: key, value: value, prev: nilIndex, next: nilIndex}
	if last := len(c.free) - 1; last >= 0 {
		i := c.free[last]
		c.free = c.free[:last]
		c.nodes[i] = n
		return i
	}
	c.nodes = append(c.nodes, n)
	return len(c.nodes) - 1
}

// release clears the slot so the old key and value can be collected.
func (c *LRUCache[K, V]) release(i int) {
	c.nodes[i] = node[K, V]{prev: nilIndex, next: nilIndex}
	c.free = append(c.free, i)
}

func (c *LRUCache[K, V]) pushFront(i int) {
	c.nodes[i].prev = nilIndex
	c.nodes[i].next = c.head
	if c.head != nilIndex {
		c.nodes[c.head].prev = i
	}
	c.head = i
	if c.tail == nilIndex {
		c.tail = i
	}
}

func (c *LRUCache[K, V]) unlink(i int) {
	n := &c.nodes[i]
	if n.prev != nilIndex {
		c.nodes[n.prev].next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nilIndex {
		c.nodes[n.next].prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev = nilIndex
	n.next = nilIndex
}

func (c *LRUCache[K, V]) moveToFront(i int) {
	if c.head == i {
		return
	}
	c.unlink(i)
	c.pushFront(i)
}
