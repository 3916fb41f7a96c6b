package pool_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exascience/batchpar/pool"
)

func TestCursor_SequentialClaims(t *testing.T) {
	c := pool.NewCursor(10)
	type claim struct{ low, high int }
	var claims []claim
	for {
		low, high, ok := c.Claim(4)
		if !ok {
			break
		}
		claims = append(claims, claim{low, high})
	}
	require.Equal(t, []claim{{0, 4}, {4, 8}, {8, 10}}, claims)
	// Exhaustion is permanent.
	_, _, ok := c.Claim(4)
	require.False(t, ok)
}

func TestCursor_EmptyIsExhausted(t *testing.T) {
	c := pool.NewCursor(0)
	_, _, ok := c.Claim(1)
	require.False(t, ok)
}

func TestCursor_ConcurrentClaimsCoverExactlyOnce(t *testing.T) {
	const n = 10000
	const claimers = 8
	for _, batchSize := range []int{1, 3, 7, 64, n, n + 1} {
		covered := make([]int32, n)
		var disordered, empty int32
		var wg sync.WaitGroup
		c := pool.NewCursor(n)
		for g := 0; g < claimers; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				prev := -1
				for {
					low, high, ok := c.Claim(batchSize)
					if !ok {
						return
					}
					if low <= prev {
						atomic.AddInt32(&disordered, 1)
					}
					if low >= high {
						atomic.AddInt32(&empty, 1)
					}
					prev = low
					for i := low; i < high; i++ {
						atomic.AddInt32(&covered[i], 1)
					}
				}
			}()
		}
		wg.Wait()
		require.Zero(t, disordered, "batchSize=%d: claim starts did not increase per claimer", batchSize)
		require.Zero(t, empty, "batchSize=%d: successful claim returned an empty range", batchSize)
		for i, count := range covered {
			require.Equal(t, int32(1), count, "batchSize=%d: index %d claimed %d times", batchSize, i, count)
		}
	}
}

func TestCursor_InvalidArguments(t *testing.T) {
	require.Panics(t, func() { pool.NewCursor(-1) })
	c := pool.NewCursor(5)
	require.Panics(t, func() { c.Claim(0) })
	require.Panics(t, func() { c.Claim(-3) })
}
