// Package backend defines the storage and kernel contract that cell groups
// are built against, and provides Host, the reference CPU implementation.
//
// A backend owns three storage shapes over a single scalar type (float64 by
// default): an owned Array, a borrowed mutable View, and a borrowed
// read-only ConstView. Go slices already carry the aliasing semantics of a
// view, so all three are represented as []float64; ConstView is a plain
// []float64 too, by convention never written to by its receiver. The
// contract is synchronous: every method has observably completed its work
// by the time it returns, so callers never poll or wait on a backend
// operation.
//
// No method here allocates per compartment or per step; Host pre-sizes its
// scratch buffers when asked to grow, following the teacher repo's rule that
// kernels (kernels/ops.go) and the runtime arena (runtime/arena.go) never
// allocate on the hot path.
package backend

// Array is backend-owned storage.
type Array = []float64

// View is caller-owned, backend-mutable storage.
type View = []float64

// ConstView is caller-owned, read-only storage.
type ConstView = []float64

// Backend is the capability set a cell group needs from its numerical
// substrate. Concrete backends are selected once at cell-group construction;
// no further dynamic dispatch happens on the per-compartment hot path — each
// call below is a single indirection over however many compartments it
// touches.
type Backend interface {
	// Name identifies the backend for diagnostics.
	Name() string

	// Alloc returns a zero-filled Array of length n. Allocation failure is
	// fatal: callers do not check for a non-nil-but-invalid result.
	Alloc(n int) Array

	// Fill sets every element of dst to v.
	Fill(dst View, v float64)

	// Copy copies src into dst; dst and src must have equal length.
	Copy(dst View, src ConstView)

	// ScatterAdd adds src[i] into dst[idx[i]] for every i. idx need not be
	// sorted or unique; repeated indices accumulate.
	ScatterAdd(dst View, idx []int, src ConstView)

	// GatherAt sets dst[i] = src[idx[i]] for every i, used to sample
	// detector/probe voltages at specific compartment indices.
	GatherAt(dst View, src ConstView, idx []int)

	// SolveTridiag solves the Hines-structured linear system described by
	// parent index p, diagonal d, upper off-diagonal u, and right-hand side
	// rhs, overwriting rhs in place with the solution. p, d, u, and rhs must
	// have equal length. See matrix.Matrix for the structural invariants p
	// must satisfy. Returns a *core.NumericalError if the solution contains
	// a NaN or Inf.
	SolveTridiag(p []int, d View, u View, rhs View) error
}
