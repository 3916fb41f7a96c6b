package parallel

import (
	"fmt"
	"sync"

	"github.com/exascience/batchpar"
	"github.com/exascience/batchpar/pool"
)

// MapReduce invokes f for every index of src in parallel and combines the
// results into a single value with op, returning init for empty sources.
//
// op must be associative and commutative over the accumulator type, and
// init must be an identity element for op. Neither obligation is checked
// at runtime: each worker seeds its local accumulator from its first
// claimed element rather than from init, and the order in which workers
// fold their claimed batches and combine their partial results depends on
// scheduling, so the result is unspecified if op is not commutative, and
// a worker that claims no elements never folds init in. Given a truly
// commutative, associative op with identity init, the result equals the
// sequential fold of init with f applied to every element, independent of
// batchSize and of the number of workers.
//
// The workers of the default pool repeatedly claim batches of batchSize
// indices from a shared cursor, fold f over each claimed batch into a
// worker-local accumulator, and finally combine that accumulator into the
// shared result under a mutex. The lock is taken once per worker and held
// for a single invocation of op.
//
// If batchSize is 0, batchpar.DefaultBatchSize(len(src)) is used,
// amortizing the cursor and lock overhead over larger work units as the
// input grows. MapReduce panics if batchSize < 0.
//
// If one or more invocations of f or op panic, MapReduce eventually
// panics with one of the recovered panic values.
func MapReduce[T, R any](f func(T) R, op func(R, R) R, init R, src []T, batchSize int) R {
	return mapReduce(pool.Default(), f, op, init, src, reduceBatchSize(len(src), batchSize))
}

// MapReduce2 invokes f for every index of two equal-length source slices
// in parallel and combines the results into a single value with op. It
// behaves like MapReduce in every other respect, and returns a
// *LengthMismatchError if the sources differ in length.
func MapReduce2[A, B, R any](f func(A, B) R, op func(R, R) R, init R, a []A, b []B, batchSize int) (R, error) {
	if err := checkLengths(len(a), len(b)); err != nil {
		return init, err
	}
	return mapReduce2(pool.Default(), f, op, init, a, b, reduceBatchSize(len(a), batchSize)), nil
}

// MapReduce3 invokes f for every index of three equal-length source
// slices in parallel and combines the results into a single value with
// op. It behaves like MapReduce in every other respect, and returns a
// *LengthMismatchError if the sources differ in length.
func MapReduce3[A, B, C, R any](f func(A, B, C) R, op func(R, R) R, init R, a []A, b []B, c []C, batchSize int) (R, error) {
	if err := checkLengths(len(a), len(b), len(c)); err != nil {
		return init, err
	}
	return mapReduce3(pool.Default(), f, op, init, a, b, c, reduceBatchSize(len(a), batchSize)), nil
}

// reduceBatchSize resolves the batch size parameter of the map-reduce
// functions: 0 selects the square-root heuristic default.
func reduceBatchSize(n, batchSize int) int {
	switch {
	case batchSize > 0:
		return batchSize
	case batchSize == 0:
		return batchpar.DefaultBatchSize(n)
	default:
		panic(fmt.Sprintf("invalid batch size: %v", batchSize))
	}
}

func mapReduce[T, R any](p *pool.Pool, f func(T) R, op func(R, R) R, init R, src []T, batchSize int) R {
	if len(src) == 0 {
		return init
	}
	result := init
	var mu sync.Mutex
	cursor := pool.NewCursor(len(src))
	p.Dispatch(func(*pool.Worker) {
		low, high, ok := cursor.Claim(batchSize)
		if !ok {
			// This worker claimed nothing and contributes nothing.
			return
		}
		acc := f(src[low])
		for i := low + 1; i < high; i++ {
			acc = op(acc, f(src[i]))
		}
		for {
			low, high, ok = cursor.Claim(batchSize)
			if !ok {
				break
			}
			for i := low; i < high; i++ {
				acc = op(acc, f(src[i]))
			}
		}
		mu.Lock()
		result = op(result, acc)
		mu.Unlock()
	})
	return result
}

func mapReduce2[A, B, R any](p *pool.Pool, f func(A, B) R, op func(R, R) R, init R, a []A, b []B, batchSize int) R {
	if len(a) == 0 {
		return init
	}
	result := init
	var mu sync.Mutex
	cursor := pool.NewCursor(len(a))
	p.Dispatch(func(*pool.Worker) {
		low, high, ok := cursor.Claim(batchSize)
		if !ok {
			return
		}
		acc := f(a[low], b[low])
		for i := low + 1; i < high; i++ {
			acc = op(acc, f(a[i], b[i]))
		}
		for {
			low, high, ok = cursor.Claim(batchSize)
			if !ok {
				break
			}
			for i := low; i < high; i++ {
				acc = op(acc, f(a[i], b[i]))
			}
		}
		mu.Lock()
		result = op(result, acc)
		mu.Unlock()
	})
	return result
}

func mapReduce3[A, B, C, R any](p *pool.Pool, f func(A, B, C) R, op func(R, R) R, init R, a []A, b []B, c []C, batchSize int) R {
	if len(a) == 0 {
		return init
	}
	result := init
	var mu sync.Mutex
	cursor := pool.NewCursor(len(a))
	p.Dispatch(func(*pool.Worker) {
		low, high, ok := cursor.Claim(batchSize)
		if !ok {
			return
		}
		acc := f(a[low], b[low], c[low])
		for i := low + 1; i < high; i++ {
			acc = op(acc, f(a[i], b[i], c[i]))
		}
		for {
			low, high, ok = cursor.Claim(batchSize)
			if !ok {
				break
			}
			for i := low; i < high; i++ {
				acc = op(acc, f(a[i], b[i], c[i]))
			}
		}
		mu.Lock()
		result = op(result, acc)
		mu.Unlock()
	})
	return result
}
