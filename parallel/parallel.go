// Package parallel provides a threaded element-wise map over one or more
// equal-length slices into a destination slice, and a threaded commutative
// map-reduce.
//
// All functions in this package run on the process-wide default pool from
// the pool package, which is sized once, on first use, to the number of
// available logical CPUs. Work is distributed through a shared atomic
// cursor: each worker repeatedly claims the next batch of indices until
// the cursor is exhausted, so workers self-balance without a task queue.
//
// The functions in this package must not be called from inside a body
// already dispatched on the default pool; dispatches are serialized and
// such a nested call deadlocks.
package parallel

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is matched, through errors.Is, by the errors returned
// when the destination and source slices of a parallel operation do not
// all share one length.
var ErrLengthMismatch = errors.New("length mismatch")

// A LengthMismatchError reports that the slices passed to one of the
// parallel operations do not all share one length. It is returned before
// any worker starts; no element has been read or written.
//
// For the map functions, Lengths[0] is the destination length and the
// remaining entries are the source lengths, in argument order. For the
// map-reduce functions, the entries are the source lengths.
type LengthMismatchError struct {
	Lengths []int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v: %v", ErrLengthMismatch, e.Lengths)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}

// checkLengths returns a *LengthMismatchError unless all given lengths
// are equal.
func checkLengths(lengths ...int) error {
	for _, l := range lengths[1:] {
		if l != lengths[0] {
			return &LengthMismatchError{Lengths: lengths}
		}
	}
	return nil
}

// mapBatchSize resolves the batch size parameter of the map functions,
// which favor balance: 0 selects the default of 1.
func mapBatchSize(batchSize int) int {
	switch {
	case batchSize > 0:
		return batchSize
	case batchSize == 0:
		return 1
	default:
		panic(fmt.Sprintf("invalid batch size: %v", batchSize))
	}
}
