package batchpar

import (
	"fmt"
	"math"
)

/*
DefaultBatchSize determines a batch size for the map-reduce functions in
the parallel and sequential packages when the caller does not specify one.

It takes the number of elements n as input and returns
min(n, round(10*sqrt(n))).

Small batch sizes favor load balance: every claim hands out little work,
so slow and fast workers even out, at the cost of more traffic on the
shared cursor. Large batch sizes amortize the cursor and lock overhead
over more work per claim, at the cost of coarser balance. The square-root
heuristic grows the batch size with n so that the synchronization overhead
per element vanishes as n grows, while the number of batches still grows
without bound, preserving balance.

The map functions default to a batch size of 1 instead, favoring balance,
because a map invocation performs no combining work whose overhead would
need amortizing.

DefaultBatchSize panics if n < 0.
*/
func DefaultBatchSize(n int) int {
	if n < 0 {
		panic(fmt.Sprintf("invalid number of elements: %v", n))
	}
	if b := int(math.Round(10 * math.Sqrt(float64(n)))); b < n {
		return b
	}
	return n
}
