package cachelru

import (
	"fmt"
	"math/rand"
	"testing"
)

// Benchmark sizes to test different cache behaviors
var benchSizes = []int{100, 1_000, 10_000, 100_000}

// =============================================================================
// Cache Benchmarks
// =============================================================================

func BenchmarkCache_Get_Hit(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			cache := MustNew[int, int](size)
			for i := 0; i < size; i++ {
				cache.Set(i, i)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				cache.Get(i % size)
			}
		})
	}
}

func BenchmarkCache_Get_Miss(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			cache := MustNew[int, int](size)
			// leave cache empty

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				cache.Get(i)
			}
		})
	}
}

func BenchmarkCache_Set_New(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			cache := MustNew[int, int](size)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				cache.Set(i, i) // keys keep growing, evicting past size
			}
		})
	}
}

func BenchmarkCache_Set_Existing(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			cache := MustNew[int, int](size)
			for i := 0; i < size; i++ {
				cache.Set(i, i)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				cache.Set(i%size, i)
			}
		})
	}
}

// Fill a cold cache and read every key back once, the whole-cycle cost.
func BenchmarkCache_FillThenRead(b *testing.B) {
	const size = 1_000

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		cache := MustNew[int, int](size)
		for j := 0; j < size; j++ {
			cache.Set(j, j)
		}
		for j := 0; j < size; j++ {
			cache.Get(j)
		}
	}
}

func BenchmarkCache_Mixed(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			cache := MustNew[int, int](size)
			for i := 0; i < size; i++ {
				cache.Set(i, i)
			}
			rng := rand.New(rand.NewSource(42))

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				key := rng.Intn(size * 2)
				if key%4 == 0 {
					cache.Set(key, key)
				} else {
					cache.Get(key)
				}
			}
		})
	}
}

// =============================================================================
// Synced Benchmarks
// =============================================================================

func BenchmarkSynced_Get_Hit(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			cache := MustNewSynced[int, int](size)
			for i := 0; i < size; i++ {
				cache.Set(i, i)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				cache.Get(i % size)
			}
		})
	}
}

func BenchmarkSynced_Parallel(b *testing.B) {
	const size = 10_000

	cache := MustNewSynced[int, int](size)
	for i := 0; i < size; i++ {
		cache.Set(i, i)
	}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%4 == 0 {
				cache.Set(i%size, i)
			} else {
				cache.Get(i % size)
			}
			i++
		}
	})
}

// =============================================================================
// Sharded Benchmarks
// =============================================================================

func BenchmarkSharded_Parallel(b *testing.B) {
	const size = 10_000

	cache := MustNewSharded[int, int](size)
	for i := 0; i < size; i++ {
		cache.Set(i, i)
	}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%4 == 0 {
				cache.Set(i%size, i)
			} else {
				cache.Get(i % size)
			}
			i++
		}
	})
}
