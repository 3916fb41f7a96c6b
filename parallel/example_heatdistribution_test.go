package parallel_test

// A simplified heat distribution simulation: one Jacobi relaxation step
// averages every interior cell with its four neighbors, and the iteration
// converges when the largest cell-wise change falls below a threshold.
//
// See https://en.wikipedia.org/wiki/Heat_equation for some theoretical
// background.

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/exascience/batchpar/parallel"
)

// relaxStep computes one relaxation step of v into a fresh matrix. The
// border cells hold the fixed boundary condition. The cell indices of the
// flattened matrix serve as the map source, so each worker reads shared
// old state and writes only its claimed cells of the new state.
func relaxStep(v *mat.Dense, cells []int) *mat.Dense {
	rows, cols := v.Dims()
	data := v.RawMatrix().Data
	out := parallel.Map(func(i int) float64 {
		r, c := i/cols, i%cols
		if (r == 0) || (r == rows-1) || (c == 0) || (c == cols-1) {
			return data[i]
		}
		return (data[i-cols] + data[i+cols] + data[i-1] + data[i+1]) / 4
	}, cells, 0)
	return mat.NewDense(rows, cols, out)
}

// maxDiff computes the largest absolute cell-wise difference between two
// equally sized matrices.
func maxDiff(m1, m2 *mat.Dense) float64 {
	diff, err := parallel.MapReduce2(
		func(x, y float64) float64 { return math.Abs(x - y) },
		math.Max,
		math.Inf(-1),
		m1.RawMatrix().Data, m2.RawMatrix().Data, 0,
	)
	if err != nil {
		panic(err)
	}
	return diff
}

func Example_heatDistribution() {
	const rows, cols = 4, 4

	// A cold plate heated along its top edge.
	v := mat.NewDense(rows, cols, nil)
	for c := 0; c < cols; c++ {
		v.Set(0, c, 4)
	}

	cells := make([]int, rows*cols)
	for i := range cells {
		cells[i] = i
	}

	for step := 0; step < 2; step++ {
		next := relaxStep(v, cells)
		fmt.Printf("%.2f\n", maxDiff(v, next))
		v = next
	}

	// Output:
	// 1.00
	// 0.25
}
