package cache

import (
	"container/list"
	"sync"
	"time"
)

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// TTLCache is a thread-safe LRU cache whose entries expire at insertion time plus TTL.
// Expired entries are dropped lazily on access; there is no background goroutine.
type TTLCache[K comparable, V any] struct {
	mu           sync.Mutex
	capacity     int
	ttl          time.Duration
	now          Clock
	items        map[K]*list.Element
	evictionList *list.List
}

// New creates a cache holding at most capacity entries (0 means unbounded).
// A nil clock falls back to time.Now.
func New[K comparable, V any](capacity int, ttl time.Duration, now Clock) *TTLCache[K, V] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[K, V]{
		capacity:     capacity,
		ttl:          ttl,
		now:          now,
		items:        make(map[K]*list.Element),
		evictionList: list.New(),
	}
}

// Get returns a live entry and marks it recently used.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V

	elem, found := c.items[key]
	if !found {
		return zero, false
	}

	e := elem.Value.(*entry[K, V])
	if !c.now().Before(e.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.evictionList.MoveToFront(elem)
	return e.value, true
}

// Set adds or replaces an entry and restarts its TTL.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if elem, found := c.items[key]; found {
		c.evictionList.MoveToFront(elem)
		e := elem.Value.(*entry[K, V])
		e.value = value
		e.expiresAt = expiresAt
		return
	}

	elem := c.evictionList.PushFront(&entry[K, V]{key: key, value: value, expiresAt: expiresAt})
	c.items[key] = elem

	if c.capacity > 0 && c.evictionList.Len() > c.capacity {
		c.removeElement(c.evictionList.Back())
	}
}

// Delete removes an entry.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.items[key]; found {
		c.removeElement(elem)
	}
}

// Len returns the number of stored entries, expired ones included until they are touched.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictionList.Len()
}

// CleanupExpired drops every expired entry and returns how many were removed.
func (c *TTLCache[K, V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0

	var next *list.Element
	for elem := c.evictionList.Back(); elem != nil; elem = next {
		next = elem.Prev()
		if !now.Before(elem.Value.(*entry[K, V]).expiresAt) {
			c.removeElement(elem)
			removed++
		}
	}

	return removed
}

func (c *TTLCache[K, V]) removeElement(elem *list.Element) {
	c.evictionList.Remove(elem)
	delete(c.items, elem.Value.(*entry[K, V]).key)
}
