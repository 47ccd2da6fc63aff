package backend

import (
	"math"

	"github.com/nestmc/nestmc/core"
)

// solveHines implements the Hines algorithm described in the matrix/cable
// solver design: a backward pass in descending index order that eliminates
// each compartment's upper off-diagonal into its parent, followed by a
// forward substitution in ascending index order. p[i] < i for every
// non-root compartment, and p[i] == i exactly at a cell's root, so both
// passes are sequential within a cell but make no assumption about ordering
// across cells in the same packed arrays.
func solveHines(p []int, d, u, rhs []float64) error {
	n := len(d)
	if len(p) != n || len(u) != n || len(rhs) != n {
		return &core.NumericalError{Component: "matrix", Reason: "p, d, u, rhs length mismatch"}
	}

	for i := n - 1; i >= 0; i-- {
		pi := p[i]
		if pi == i {
			continue // cell root: nothing to eliminate upward
		}
		factor := u[i] / d[i]
		d[pi] -= factor * u[i]
		rhs[pi] -= factor * rhs[i]
	}

	for i := 0; i < n; i++ {
		pi := p[i]
		if pi == i {
			rhs[i] = rhs[i] / d[i]
		} else {
			rhs[i] = (rhs[i] - u[i]*rhs[pi]) / d[i]
		}
	}

	for i := 0; i < n; i++ {
		if math.IsNaN(rhs[i]) || math.IsInf(rhs[i], 0) {
			return &core.NumericalError{Component: "matrix", Reason: "non-finite value in solution"}
		}
	}
	return nil
}
