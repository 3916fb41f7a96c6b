// Package batchpar provides primitives for batch-claiming parallel
// computation over slices. While Go is primarily designed for concurrent
// programming, it is also usable to some extent for parallel programming,
// and this library provides convenience functionality to turn otherwise
// sequential element-wise algorithms into parallel algorithms, with the
// goal to improve performance.
//
// Work is distributed over a fixed pool of worker goroutines through a
// single shared atomic cursor: workers self-balance by repeatedly claiming
// the next batch of indices rather than being assigned static contiguous
// ranges. There is no task queue and no work stealing; the cursor is the
// entire scheduling mechanism.
//
// Batchpar provides the following subpackages:
//
// batchpar/parallel provides a threaded element-wise map over one or more
// equal-length slices into a destination slice, and a threaded commutative
// map-reduce.
//
// batchpar/sequential provides sequential implementations of the functions
// from batchpar/parallel, for testing and debugging purposes.
//
// batchpar/pool provides the fixed worker pool, worker identities, the
// atomic batch cursor, and a static range partitioner.
//
// batchpar/trand provides independent pseudo-random streams, one per
// worker, derived from a single seed by a deterministic jump-ahead, so
// that multithreaded random sampling is statistically sound.
package batchpar
