// Package sequential provides sequential implementations of the functions
// provided by the parallel package. This is useful for testing and
// debugging.
//
// It is not recommended to use the implementations of this package for
// any other purpose, because a plain loop at the call site is almost
// certainly clearer and at least as fast.
package sequential

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is matched, through errors.Is, by the errors returned
// when the destination and source slices of an operation do not all share
// one length. It mirrors parallel.ErrLengthMismatch.
var ErrLengthMismatch = errors.New("length mismatch")

// A LengthMismatchError reports that the slices passed to one of the
// operations do not all share one length. It mirrors
// parallel.LengthMismatchError.
type LengthMismatchError struct {
	Lengths []int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v: %v", ErrLengthMismatch, e.Lengths)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}

func checkLengths(lengths ...int) error {
	for _, l := range lengths[1:] {
		if l != lengths[0] {
			return &LengthMismatchError{Lengths: lengths}
		}
	}
	return nil
}

// MapInto invokes f for every index of src in increasing order and stores
// the results in the corresponding indices of dst, returning dst. The
// batchSize parameter is accepted for signature compatibility with
// parallel.MapInto and ignored, except that batchSize < 0 panics there
// and panics here as well.
func MapInto[T, R any](f func(T) R, dst []R, src []T, batchSize int) ([]R, error) {
	checkBatchSize(batchSize)
	if err := checkLengths(len(dst), len(src)); err != nil {
		return nil, err
	}
	for i := range src {
		dst[i] = f(src[i])
	}
	return dst, nil
}

// Map invokes f for every index of src in increasing order and returns a
// freshly allocated slice of the results.
func Map[T, R any](f func(T) R, src []T, batchSize int) []R {
	checkBatchSize(batchSize)
	dst := make([]R, len(src))
	for i := range src {
		dst[i] = f(src[i])
	}
	return dst
}

// Map2Into is the two-source variant of MapInto.
func Map2Into[A, B, R any](f func(A, B) R, dst []R, a []A, b []B, batchSize int) ([]R, error) {
	checkBatchSize(batchSize)
	if err := checkLengths(len(dst), len(a), len(b)); err != nil {
		return nil, err
	}
	for i := range a {
		dst[i] = f(a[i], b[i])
	}
	return dst, nil
}

// Map2 is the two-source, allocating variant of Map. It returns a
// *LengthMismatchError if the sources differ in length.
func Map2[A, B, R any](f func(A, B) R, a []A, b []B, batchSize int) ([]R, error) {
	checkBatchSize(batchSize)
	if err := checkLengths(len(a), len(b)); err != nil {
		return nil, err
	}
	dst := make([]R, len(a))
	for i := range a {
		dst[i] = f(a[i], b[i])
	}
	return dst, nil
}

// Map3Into is the three-source variant of MapInto.
func Map3Into[A, B, C, R any](f func(A, B, C) R, dst []R, a []A, b []B, c []C, batchSize int) ([]R, error) {
	checkBatchSize(batchSize)
	if err := checkLengths(len(dst), len(a), len(b), len(c)); err != nil {
		return nil, err
	}
	for i := range a {
		dst[i] = f(a[i], b[i], c[i])
	}
	return dst, nil
}

// Map3 is the three-source, allocating variant of Map. It returns a
// *LengthMismatchError if the sources differ in length.
func Map3[A, B, C, R any](f func(A, B, C) R, a []A, b []B, c []C, batchSize int) ([]R, error) {
	checkBatchSize(batchSize)
	if err := checkLengths(len(a), len(b), len(c)); err != nil {
		return nil, err
	}
	dst := make([]R, len(a))
	for i := range a {
		dst[i] = f(a[i], b[i], c[i])
	}
	return dst, nil
}

// MapReduce invokes f for every index of src in increasing order and
// combines the results into a single value with op, starting from init.
// It computes the sequential fold that parallel.MapReduce is specified to
// agree with when op is associative and commutative with identity init.
func MapReduce[T, R any](f func(T) R, op func(R, R) R, init R, src []T, batchSize int) R {
	checkBatchSize(batchSize)
	acc := init
	for i := range src {
		acc = op(acc, f(src[i]))
	}
	return acc
}

// MapReduce2 is the two-source variant of MapReduce.
func MapReduce2[A, B, R any](f func(A, B) R, op func(R, R) R, init R, a []A, b []B, batchSize int) (R, error) {
	checkBatchSize(batchSize)
	if err := checkLengths(len(a), len(b)); err != nil {
		return init, err
	}
	acc := init
	for i := range a {
		acc = op(acc, f(a[i], b[i]))
	}
	return acc, nil
}

// MapReduce3 is the three-source variant of MapReduce.
func MapReduce3[A, B, C, R any](f func(A, B, C) R, op func(R, R) R, init R, a []A, b []B, c []C, batchSize int) (R, error) {
	checkBatchSize(batchSize)
	if err := checkLengths(len(a), len(b), len(c)); err != nil {
		return init, err
	}
	acc := init
	for i := range a {
		acc = op(acc, f(a[i], b[i], c[i]))
	}
	return acc, nil
}

func checkBatchSize(batchSize int) {
	if batchSize < 0 {
		panic(fmt.Sprintf("invalid batch size: %v", batchSize))
	}
}
