// Package matrix assembles and solves the Hines-structured linear system
// that a cell group's implicit cable-equation step reduces to: one
// tridiagonal tree system per cell, packed into shared linear arrays for
// every cell in the group.
package matrix

import (
	"fmt"

	"github.com/nestmc/nestmc/backend"
)

// Matrix is the packed representation of one or more cells' compartment
// systems: a parent-index array P with P[i] < i for every non-root
// compartment and P[i] == i exactly at a cell's root, a diagonal D, an
// upper off-diagonal U coupling each compartment to its parent, a
// right-hand side RHS, and CellIndex boundary markers splitting the packed
// arrays into per-cell ranges.
type Matrix struct {
	P         []int
	D         backend.Array
	U         backend.Array
	RHS       backend.Array
	CellIndex []int
}

// New allocates a Matrix sized to hold the cells described by cellSizes
// (compartment count per cell) and parents (the packed parent-index array,
// already offset so each cell's root satisfies P[i] == i in the packed
// numbering). Storage for D, U, and RHS comes from b.
func New(b backend.Backend, parents []int) (*Matrix, []int, error) {
	n := len(parents)
	m := &Matrix{
		P:   append([]int(nil), parents...),
		D:   b.Alloc(n),
		U:   b.Alloc(n),
		RHS: b.Alloc(n),
	}
	if err := m.ValidateStructure(); err != nil {
		return nil, nil, err
	}
	m.CellIndex = CellBoundaries(m.P)
	return m, m.P, nil
}

// Size returns the total number of packed compartments.
func (m *Matrix) Size() int { return len(m.D) }

// ValidateStructure checks the structural invariants the Hines solve
// depends on: P[i] < i for every non-root i, and within each cell's range
// P is monotonically non-decreasing as i increases.
func (m *Matrix) ValidateStructure() error {
	n := len(m.P)
	if len(m.D) != n || len(m.U) != n || len(m.RHS) != n {
		return fmt.Errorf("matrix: P, D, U, RHS length mismatch")
	}
	lastParent := -1
	lastWasRoot := true
	for i, p := range m.P {
		if p == i {
			lastParent = -1
			lastWasRoot = true
			continue
		}
		if p >= i {
			return fmt.Errorf("matrix: parent index %d at position %d must be less than its own index", p, i)
		}
		if !lastWasRoot && p < lastParent {
			return fmt.Errorf("matrix: parent index not monotonically non-decreasing at position %d", i)
		}
		lastParent = p
		lastWasRoot = false
	}
	return nil
}

// CellBoundaries splits P into contiguous cell ranges by scanning for root
// markers (P[i] == i); every cell in the packed layout starts with its
// root. Returns boundary offsets of length ncells+1.
func CellBoundaries(parents []int) []int {
	bounds := []int{0}
	for i, p := range parents {
		if p == i && i != 0 {
			bounds = append(bounds, i)
		}
	}
	bounds = append(bounds, len(parents))
	return bounds
}
