package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a fixed-capacity least-recently-used cache.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List // front = most recently used
	onEvict  func(K, V)
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithOnEvict sets a callback for entries that leave the cache through
// eviction, Remove or Purge.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *LRU[K, V]) { c.onEvict = fn }
}

// NewLRU returns a cache holding at most capacity entries. Panics if capacity
// is not positive.
func NewLRU[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	c := &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores value under key, replacing any previous value without calling
// the eviction callback for it.
func (c *LRU[K, V]) Put(key K, value V) {
	var evicted []*entry[K, V]

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
	} else {
		c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
		evicted = c.trim()
	}
	c.mu.Unlock()

	c.notify(evicted)
}

// GetOrCreate returns the cached value for key, or stores and returns the
// result of create. create runs under the cache lock and must not use the
// cache.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) (V, bool) {
	var evicted []*entry[K, V]

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		v := el.Value.(*entry[K, V]).value
		c.mu.Unlock()
		return v, true
	}
	v := create()
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: v})
	evicted = c.trim()
	c.mu.Unlock()

	c.notify(evicted)
	return v, false
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	el, ok := c.items[key]
	if ok {
		c.unlink(el)
	}
	c.mu.Unlock()

	if ok {
		c.notify([]*entry[K, V]{el.Value.(*entry[K, V])})
	}
	return ok
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge empties the cache.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	all := make([]*entry[K, V], 0, c.order.Len())
	for el := c.order.Back(); el != nil; el = el.Prev() {
		all = append(all, el.Value.(*entry[K, V]))
	}
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
	c.mu.Unlock()

	c.notify(all)
}

// Must be called with c.mu held.
func (c *LRU[K, V]) trim() []*entry[K, V] {
	var out []*entry[K, V]
	for c.order.Len() > c.capacity {
		el := c.order.Back()
		c.unlink(el)
		out = append(out, el.Value.(*entry[K, V]))
	}
	return out
}

// Must be called with c.mu held.
func (c *LRU[K, V]) unlink(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}

func (c *LRU[K, V]) notify(entries []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range entries {
		c.onEvict(e.key, e.value)
	}
}
