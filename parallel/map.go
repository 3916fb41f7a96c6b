package parallel

import (
	"github.com/exascience/batchpar/pool"
)

// MapInto invokes f for every index of src in parallel and stores the
// results in the corresponding indices of dst, returning dst.
//
// dst and src must share one length; otherwise a *LengthMismatchError is
// returned before any worker starts and no element is written. dst and
// src may be the same slice, but must not otherwise overlap.
//
// The workers of the default pool repeatedly claim batches of batchSize
// indices from a shared cursor until it is exhausted. f is invoked
// exactly once per index, in no defined order; different workers write to
// disjoint indices of dst, so no synchronization is involved beyond the
// cursor itself. The result does not depend on batchSize or on the number
// of workers.
//
// A batchSize of 1 claims per element, favoring load balance at the cost
// of cursor contention; larger values reduce contention at the cost of
// coarser balance. If batchSize is 0, the default of 1 is used. MapInto
// panics if batchSize < 0.
//
// If one or more invocations of f panic, MapInto eventually panics with
// one of the recovered panic values, and dst is left in an undefined
// intermediate state: entries written before the panic remain written,
// unclaimed entries remain untouched.
func MapInto[T, R any](f func(T) R, dst []R, src []T, batchSize int) ([]R, error) {
	if err := checkLengths(len(dst), len(src)); err != nil {
		return nil, err
	}
	mapInto(pool.Default(), f, dst, src, mapBatchSize(batchSize))
	return dst, nil
}

// Map invokes f for every index of src in parallel and returns a freshly
// allocated slice of the results. It is the allocating convenience
// variant of MapInto; the destination element type is the type parameter
// R. A length mismatch is impossible, so no error is returned.
func Map[T, R any](f func(T) R, src []T, batchSize int) []R {
	dst := make([]R, len(src))
	mapInto(pool.Default(), f, dst, src, mapBatchSize(batchSize))
	return dst
}

// Map2Into invokes f for every index of two equal-length source slices in
// parallel and stores the results in the corresponding indices of dst,
// returning dst. It behaves like MapInto in every other respect.
func Map2Into[A, B, R any](f func(A, B) R, dst []R, a []A, b []B, batchSize int) ([]R, error) {
	if err := checkLengths(len(dst), len(a), len(b)); err != nil {
		return nil, err
	}
	map2Into(pool.Default(), f, dst, a, b, mapBatchSize(batchSize))
	return dst, nil
}

// Map2 invokes f for every index of two equal-length source slices in
// parallel and returns a freshly allocated slice of the results. It
// returns a *LengthMismatchError if the sources differ in length.
func Map2[A, B, R any](f func(A, B) R, a []A, b []B, batchSize int) ([]R, error) {
	if err := checkLengths(len(a), len(b)); err != nil {
		return nil, err
	}
	dst := make([]R, len(a))
	map2Into(pool.Default(), f, dst, a, b, mapBatchSize(batchSize))
	return dst, nil
}

// Map3Into invokes f for every index of three equal-length source slices
// in parallel and stores the results in the corresponding indices of dst,
// returning dst. It behaves like MapInto in every other respect.
func Map3Into[A, B, C, R any](f func(A, B, C) R, dst []R, a []A, b []B, c []C, batchSize int) ([]R, error) {
	if err := checkLengths(len(dst), len(a), len(b), len(c)); err != nil {
		return nil, err
	}
	map3Into(pool.Default(), f, dst, a, b, c, mapBatchSize(batchSize))
	return dst, nil
}

// Map3 invokes f for every index of three equal-length source slices in
// parallel and returns a freshly allocated slice of the results. It
// returns a *LengthMismatchError if the sources differ in length.
func Map3[A, B, C, R any](f func(A, B, C) R, a []A, b []B, c []C, batchSize int) ([]R, error) {
	if err := checkLengths(len(a), len(b), len(c)); err != nil {
		return nil, err
	}
	dst := make([]R, len(a))
	map3Into(pool.Default(), f, dst, a, b, c, mapBatchSize(batchSize))
	return dst, nil
}

func mapInto[T, R any](p *pool.Pool, f func(T) R, dst []R, src []T, batchSize int) {
	cursor := pool.NewCursor(len(dst))
	p.Dispatch(func(*pool.Worker) {
		for {
			low, high, ok := cursor.Claim(batchSize)
			if !ok {
				return
			}
			for i := low; i < high; i++ {
				dst[i] = f(src[i])
			}
		}
	})
}

func map2Into[A, B, R any](p *pool.Pool, f func(A, B) R, dst []R, a []A, b []B, batchSize int) {
	cursor := pool.NewCursor(len(dst))
	p.Dispatch(func(*pool.Worker) {
		for {
			low, high, ok := cursor.Claim(batchSize)
			if !ok {
				return
			}
			for i := low; i < high; i++ {
				dst[i] = f(a[i], b[i])
			}
		}
	})
}

func map3Into[A, B, C, R any](p *pool.Pool, f func(A, B, C) R, dst []R, a []A, b []B, c []C, batchSize int) {
	cursor := pool.NewCursor(len(dst))
	p.Dispatch(func(*pool.Worker) {
		for {
			low, high, ok := cursor.Claim(batchSize)
			if !ok {
				return
			}
			for i := low; i < high; i++ {
				dst[i] = f(a[i], b[i], c[i])
			}
		}
	})
}
