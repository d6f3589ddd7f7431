package cachelru

import "errors"

// ErrInvalidCapacity is returned by constructors when the requested capacity
// is negative.
var ErrInvalidCapacity = errors.New("capacity must not be negative")

// OnEvictFunc is a function that is called when an entry is removed from the
// cache, whether by capacity eviction, Remove, or Clear.
type OnEvictFunc[K comparable, V any] func(key K, value V)

// Cache represents a fixed-size LRU cache.
//
// Cache is not safe for concurrent use: Get promotes the entry it returns,
// so even lookups mutate internal state. Use [Synced], or a lock of your
// own, when multiple goroutines share one cache.
//
// A Cache must be created with [New] or [MustNew]; the zero value is not
// ready for use.
type Cache[K comparable, V any] struct {
	capacity int
	index    map[K]*entry[K, V]
	order    recencyList[K, V]
	onEvict  OnEvictFunc[K, V] // callback for evictions
}

// New creates a new LRU cache holding at most capacity entries.
//
// Zero is a valid, degenerate capacity: every Set of a new key inserts the
// entry and immediately evicts it again (the eviction callback sees the
// pair), so the cache retains nothing. A negative capacity returns
// [ErrInvalidCapacity].
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	return &Cache[K, V]{
		capacity: capacity,
		index:    make(map[K]*entry[K, V], capacity),
	}, nil
}

// MustNew creates a new LRU cache with the given capacity.
// It panics if the capacity is negative.
func MustNew[K comparable, V any](capacity int) *Cache[K, V] {
	cache, err := New[K, V](capacity)
	if err != nil {
		panic(err)
	}
	return cache
}

// Get retrieves a value from the cache by key.
// It returns the value and a boolean indicating whether the key was found.
// A hit makes the entry the most recently used; a miss has no side effects.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, found := c.index[key]
	if !found {
		var zero V
		return zero, false
	}

	c.order.moveToFront(e)
	return e.val, true
}

// Peek retrieves a value from the cache by key without updating its position
// in recency order. This is useful for checking a value without affecting
// eviction order. Returns the value and a boolean indicating whether the key
// was found.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	e, found := c.index[key]
	if !found {
		var zero V
		return zero, false
	}

	return e.val, true
}

// Set adds or updates an item in the cache.
// An existing key has its value updated in place and becomes the most
// recently used. A new key is inserted at the most-recently-used end; if
// that takes the cache over capacity, the least recently used entry is
// evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	evictedKey, evictedVal, evicted := c.set(key, value)
	if evicted && c.onEvict != nil {
		c.onEvict(evictedKey, evictedVal)
	}
}

// set performs Set and reports the evicted pair, if any, so that locking
// wrappers can invoke their callback after releasing their lock.
func (c *Cache[K, V]) set(key K, value V) (evictedKey K, evictedVal V, evicted bool) {
	// if key exists, update value in place and promote
	if e, found := c.index[key]; found {
		e.val = value
		c.order.moveToFront(e)
		return
	}

	e := &entry[K, V]{key: key, val: value}
	c.order.pushFront(e)
	c.index[key] = e

	// capacity is enforced after the insert, so a single over-capacity Set
	// evicts exactly once and the capacity-zero cache still runs the full
	// insert-then-evict cycle
	if len(c.index) > c.capacity {
		if oldest := c.order.popBack(); oldest != nil {
			delete(c.index, oldest.key)
			return oldest.key, oldest.val, true
		}
	}
	return
}

// Remove deletes an item from the cache by key.
// It returns whether the key was found and removed. The eviction callback,
// if set, is invoked for the removed entry.
func (c *Cache[K, V]) Remove(key K) bool {
	val, found := c.removeKey(key)
	if found && c.onEvict != nil {
		c.onEvict(key, val)
	}
	return found
}

// removeKey unlinks key from both the index and the recency order, returning
// the removed value.
func (c *Cache[K, V]) removeKey(key K) (V, bool) {
	e, found := c.index[key]
	if !found {
		var zero V
		return zero, false
	}

	delete(c.index, key)
	c.order.remove(e)
	return e.val, true
}

// Len returns the current number of items in the cache.
func (c *Cache[K, V]) Len() int {
	return len(c.index)
}

// Capacity returns the maximum capacity of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Contains checks if a key exists in the cache without updating recency
// order.
func (c *Cache[K, V]) Contains(key K) bool {
	_, found := c.index[key]
	return found
}

// Keys returns a slice of all keys in the cache.
// The order is from most recently used to least recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.index))
	for e := c.order.head; e != nil; e = e.next {
		keys = append(keys, e.key)
	}

	return keys
}

// Clear removes all items from the cache. The eviction callback, if set, is
// invoked for each removed entry in most-to-least recently used order.
func (c *Cache[K, V]) Clear() {
	for _, e := range c.reset(c.onEvict != nil) {
		c.onEvict(e.key, e.val)
	}
}

// reset empties the cache. When collect is true it returns the former
// entries in recency order so the caller can report them.
func (c *Cache[K, V]) reset(collect bool) []entry[K, V] {
	var removed []entry[K, V]
	if collect {
		removed = make([]entry[K, V], 0, len(c.index))
		for e := c.order.head; e != nil; e = e.next {
			removed = append(removed, entry[K, V]{key: e.key, val: e.val})
		}
	}

	c.index = make(map[K]*entry[K, V], c.capacity)
	c.order = recencyList[K, V]{}
	return removed
}

// OnEvict sets a callback function that will be called when an entry is
// removed from the cache. The callback will receive the key and value of the
// removed entry. A nil callback disables notification.
func (c *Cache[K, V]) OnEvict(f OnEvictFunc[K, V]) {
	c.onEvict = f
}
