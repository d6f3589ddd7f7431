// Package cachelru provides generic, fixed-capacity LRU caches.
//
// Three cache types are provided:
//
//   - [Cache]: the core single-threaded LRU cache
//   - [Synced]: a Cache behind a single lock, safe for concurrent use
//   - [Sharded]: keys distributed over several Synced caches to reduce
//     lock contention
//
// All three evict the least recently used entry when a new key would take
// the cache over capacity. Both Get and Set count as a use.
//
// # Basic Usage
//
// Create a cache and store values:
//
//	cache := cachelru.MustNew[string, int](100)
//	cache.Set("key", 42)
//	value, found := cache.Get("key")
//
// [Cache] is not safe for concurrent use: looking a key up promotes it in
// recency order, so even Get mutates internal state and there is no
// read-only path to exploit. Share a cache between goroutines through
// [Synced] (or a lock of your own) instead:
//
//	cache := cachelru.MustNewSynced[string, int](100)
//
// # Memoization with GetOrSet
//
// Compute values on cache miss:
//
//	result, err := cache.GetOrSet("key", func() (int, error) {
//	    return expensiveComputation()
//	})
//
// When the compute function is expensive, [Synced.GetOrSetSingleflight]
// additionally guarantees that concurrent callers for the same missing key
// run it exactly once.
//
// # Capacity
//
// Capacity is fixed at construction. Zero is accepted as a valid degenerate
// capacity: such a cache runs every insert through the full insert-then-evict
// cycle and retains nothing. Negative capacity is rejected with
// [ErrInvalidCapacity].
//
// # Eviction Callbacks
//
// Register a callback to be notified when entries leave the cache:
//
//	cache.OnEvict(func(key string, value int) {
//	    fmt.Printf("evicted: %s=%d\n", key, value)
//	})
//
// Callbacks are invoked for capacity evictions, explicit removals via
// Remove, and Clear.
package cachelru
