package pool

import (
	"fmt"
	"sync/atomic"
)

// A Cursor hands out batches of indices from the half-open interval from
// 0 to n, in strictly increasing order, to any number of concurrently
// claiming workers.
//
// A Cursor is a single shared counter advanced by atomic fetch-and-add;
// it is deliberately not a queue. Every index in the interval is covered
// by exactly one successful claim, and no two claims overlap, which is
// what makes unsynchronized writes to disjoint destination indices safe
// in the parallel package.
//
// A Cursor is created fresh for one parallel operation and discarded when
// that operation completes; it cannot be reset.
type Cursor struct {
	next  atomic.Int64
	limit int64
}

// NewCursor returns a cursor over the half-open interval from 0 to n.
//
// NewCursor panics if n < 0.
func NewCursor(n int) *Cursor {
	if n < 0 {
		panic(fmt.Sprintf("invalid number of elements: %v", n))
	}
	return &Cursor{limit: int64(n)}
}

// Claim atomically claims the next batch of up to batchSize indices,
// returning the claimed half-open range from low to high. The final batch
// of a cursor may be shorter than batchSize; after that, Claim reports
// exhaustion by returning ok == false, which is a worker's sole
// termination condition.
//
// Claim is safe under unbounded concurrent calls. It panics if
// batchSize <= 0.
func (c *Cursor) Claim(batchSize int) (low, high int, ok bool) {
	if batchSize <= 0 {
		panic(fmt.Sprintf("invalid batch size: %v", batchSize))
	}
	start := c.next.Add(int64(batchSize)) - int64(batchSize)
	if start >= c.limit {
		return 0, 0, false
	}
	end := start + int64(batchSize)
	if end > c.limit {
		end = c.limit
	}
	return int(start), int(end), true
}
