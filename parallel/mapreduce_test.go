package parallel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exascience/batchpar/pool"
	"github.com/exascience/batchpar/sequential"
)

func TestMapReduce_SumOfIdentity(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	got := MapReduce(
		func(x int) int { return x },
		func(x, y int) int { return x + y },
		0, src, 0,
	)
	require.Equal(t, 15, got)
}

func TestMapReduce_MatchesSequentialFold(t *testing.T) {
	f := func(x int) int { return x * x }
	op := func(x, y int) int { return x + y }
	for _, n := range []int{0, 1, 2, 7, 100, 1001} {
		src := make([]int, n)
		for i := range src {
			src[i] = i - n/2
		}
		want := sequential.MapReduce(f, op, 0, src, 0)
		for _, workers := range []int{1, 2, 3, 8} {
			p := pool.New(workers)
			for _, batchSize := range []int{1, 4, 16, n + 1} {
				got := mapReduce(p, f, op, 0, src, batchSize)
				require.Equal(t, want, got, "n=%d workers=%d batchSize=%d", n, workers, batchSize)
			}
			p.Close()
		}
	}
}

func TestMapReduce_BatchSizeInvariance(t *testing.T) {
	src := make([]int, 500)
	for i := range src {
		src[i] = 3*i + 1
	}
	f := func(x int) int { return x % 97 }
	op := func(x, y int) int { return x + y }
	want := MapReduce(f, op, 0, src, 1)
	for _, batchSize := range []int{0, 4, 64, 500, 501} {
		require.Equal(t, want, MapReduce(f, op, 0, src, batchSize), "batchSize=%d", batchSize)
	}
}

func TestMapReduce_EmptySourceReturnsInit(t *testing.T) {
	got := MapReduce(
		func(x int) int { return x },
		func(x, y int) int { return x + y },
		42, nil, 0,
	)
	require.Equal(t, 42, got)
}

func TestMapReduce_MaxWithIdentityInit(t *testing.T) {
	src := []float64{-3.5, 7.25, 0, -100, 7.125}
	got := MapReduce(
		func(x float64) float64 { return x },
		math.Max,
		math.Inf(-1), src, 0,
	)
	require.Equal(t, 7.25, got)
}

func TestMapReduce_NonNumericAccumulator(t *testing.T) {
	src := []uint{0, 1, 5, 9, 1}
	// Set union as a bit mask: commutative, associative, identity 0.
	got := MapReduce(
		func(x uint) uint64 { return 1 << x },
		func(x, y uint64) uint64 { return x | y },
		0, src, 2,
	)
	require.Equal(t, uint64(1<<0|1<<1|1<<5|1<<9), got)
}

func TestMapReduce2_DotProduct(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}
	got, err := MapReduce2(
		func(x, y float64) float64 { return x * y },
		func(x, y float64) float64 { return x + y },
		0, a, b, 0,
	)
	require.NoError(t, err)
	require.Equal(t, 32.0, got)
}

func TestMapReduce2_LengthMismatch(t *testing.T) {
	var calls int
	got, err := MapReduce2(
		func(x, y int) int { calls++; return x + y },
		func(x, y int) int { return x + y },
		7, []int{1, 2}, []int{1, 2, 3}, 0,
	)
	require.ErrorIs(t, err, ErrLengthMismatch)
	require.Equal(t, 7, got)
	require.Zero(t, calls)
}

func TestMapReduce3_MatchesSequential(t *testing.T) {
	n := 257
	a := make([]int, n)
	b := make([]int, n)
	c := make([]int, n)
	for i := range a {
		a[i], b[i], c[i] = i, 2*i, i%13
	}
	f := func(x, y, z int) int { return x + y*z }
	op := func(x, y int) int { return x + y }
	want, err := sequential.MapReduce3(f, op, 0, a, b, c, 0)
	require.NoError(t, err)
	got, err := MapReduce3(f, op, 0, a, b, c, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = MapReduce3(f, op, 0, a, b, c[:n-1], 0)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMapReduce_NegativeBatchSizePanics(t *testing.T) {
	require.Panics(t, func() {
		MapReduce(
			func(x int) int { return x },
			func(x, y int) int { return x + y },
			0, []int{1}, -2,
		)
	})
}

func TestMapReduce_PanicInOpPropagates(t *testing.T) {
	src := make([]int, 100)
	p := pool.New(2)
	defer p.Close()
	require.Panics(t, func() {
		mapReduce(p,
			func(x int) int { return x },
			func(x, y int) int { panic("op failure") },
			0, src, 1,
		)
	})
}
