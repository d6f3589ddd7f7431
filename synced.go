package cachelru

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Synced wraps a [Cache] in a single lock, making it safe for concurrent
// use. Get takes the write lock: a lookup promotes the entry it returns, so
// there is no read-only path for hits. Peek, Contains, Len, Keys, and
// Capacity only take the read lock.
//
// A Synced must be created with [NewSynced] or [MustNewSynced]; the zero
// value is not ready for use.
type Synced[K comparable, V any] struct {
	mu      sync.RWMutex
	cache   *Cache[K, V]
	onEvict OnEvictFunc[K, V]
	sfGroup singleflight.Group
}

// NewSynced creates a new synchronized LRU cache with the given capacity.
// The capacity policy is that of [New].
func NewSynced[K comparable, V any](capacity int) (*Synced[K, V], error) {
	cache, err := New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Synced[K, V]{cache: cache}, nil
}

// MustNewSynced creates a new synchronized LRU cache with the given
// capacity. It panics if the capacity is negative.
func MustNewSynced[K comparable, V any](capacity int) *Synced[K, V] {
	cache, err := NewSynced[K, V](capacity)
	if err != nil {
		panic(err)
	}
	return cache
}

// Get retrieves a value from the cache by key.
// It returns the value and a boolean indicating whether the key was found.
// A hit makes the entry the most recently used.
func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache.Get(key)
}

// Peek retrieves a value from the cache by key without updating its position
// in recency order.
func (s *Synced[K, V]) Peek(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Peek(key)
}

// Set adds or updates an item in the cache.
// If the cache is over capacity afterwards, the least recently used item is
// evicted.
func (s *Synced[K, V]) Set(key K, value V) {
	s.mu.Lock()
	evictedKey, evictedVal, evicted := s.cache.set(key, value)
	onEvict := s.onEvict
	s.mu.Unlock()

	if evicted && onEvict != nil {
		onEvict(evictedKey, evictedVal)
	}
}

// GetOrSet retrieves a value from the cache by key, or computes and sets it
// if not present. The compute function is only called if the key is not
// present in the cache.
// Note: if multiple goroutines call GetOrSet concurrently for the same
// missing key, compute may be called multiple times but only one result will
// be cached.
func (s *Synced[K, V]) GetOrSet(key K, compute func() (V, error)) (V, error) {
	// fast path: check if item exists
	if val, found := s.Get(key); found {
		return val, nil
	}

	// compute the value outside the lock to avoid deadlock if compute
	// calls back into the cache
	val, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	s.mu.Lock()
	// check again in case it was added while we were computing
	if existing, found := s.cache.Get(key); found {
		s.mu.Unlock()
		return existing, nil
	}

	evictedKey, evictedVal, evicted := s.cache.set(key, val)
	onEvict := s.onEvict
	s.mu.Unlock()

	if evicted && onEvict != nil {
		onEvict(evictedKey, evictedVal)
	}
	return val, nil
}

// GetOrSetSingleflight retrieves a value from the cache by key, or computes
// and sets it if not present. Unlike [Synced.GetOrSet], if multiple
// goroutines call GetOrSetSingleflight concurrently for the same missing
// key, the compute function is called exactly once and all callers receive
// the same result. This is useful when the compute function is expensive
// (e.g., database queries, API calls).
//
// The singleflight deduplication only applies to concurrent in-flight calls;
// once a value is cached, subsequent calls return the cached value without
// invoking singleflight.
func (s *Synced[K, V]) GetOrSetSingleflight(key K, compute func() (V, error)) (V, error) {
	// fast path: check if item exists
	if val, found := s.Get(key); found {
		return val, nil
	}

	// use singleflight to deduplicate concurrent computes for the same key
	sfKey := fmt.Sprintf("%v", key)
	result, err, _ := s.sfGroup.Do(sfKey, func() (any, error) {
		// check again inside singleflight in case another goroutine just cached it
		if val, found := s.Get(key); found {
			return val, nil
		}

		val, err := compute()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		// check again in case it was added while we were computing
		if existing, found := s.cache.Get(key); found {
			s.mu.Unlock()
			return existing, nil
		}

		evictedKey, evictedVal, evicted := s.cache.set(key, val)
		onEvict := s.onEvict
		s.mu.Unlock()

		if evicted && onEvict != nil {
			onEvict(evictedKey, evictedVal)
		}
		return val, nil
	})

	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Remove deletes an item from the cache by key.
// It returns whether the key was found and removed.
func (s *Synced[K, V]) Remove(key K) bool {
	s.mu.Lock()
	val, found := s.cache.removeKey(key)
	onEvict := s.onEvict
	s.mu.Unlock()

	if found && onEvict != nil {
		onEvict(key, val)
	}
	return found
}

// Len returns the current number of items in the cache.
func (s *Synced[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Len()
}

// Capacity returns the maximum capacity of the cache.
func (s *Synced[K, V]) Capacity() int {
	return s.cache.Capacity()
}

// Contains checks if a key exists in the cache.
func (s *Synced[K, V]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Contains(key)
}

// Keys returns a slice of all keys in the cache.
// The order is from most recently used to least recently used.
func (s *Synced[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Keys()
}

// Clear removes all items from the cache.
func (s *Synced[K, V]) Clear() {
	s.mu.Lock()
	removed := s.cache.reset(s.onEvict != nil)
	onEvict := s.onEvict
	s.mu.Unlock()

	for _, e := range removed {
		onEvict(e.key, e.val)
	}
}

// OnEvict sets a callback function that will be called when an entry is
// removed from the cache. The callback will receive the key and value of the
// removed entry.
//
// The callback is invoked after the cache's internal lock is released and
// may be called concurrently from multiple goroutines. It must be safe for
// concurrent use.
func (s *Synced[K, V]) OnEvict(f OnEvictFunc[K, V]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onEvict = f
}
