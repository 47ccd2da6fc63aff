package cell

import "github.com/nestmc/nestmc/core"

// SingleCompartmentSoma returns a minimal one-compartment cell: an
// isopotential soma with the given geometry, ready to have mechanisms and
// detectors appended. Used by tests and by the in-memory recipe builders
// that do not need branching morphology.
func SingleCompartmentSoma(gid core.CellGID, radius, length, capacitance, restingV float64) *Cell {
	return UnbranchedChain(gid, 1, radius, length, capacitance, restingV)
}

// UnbranchedChain returns a cell of n compartments in a single unbranched
// chain (compartment i's parent is i-1, compartment 0 is the root), every
// compartment sharing the same geometry. n=1 reduces to
// SingleCompartmentSoma. Used where a recipe's compartments_per_segment
// option asks for more than one compartment per cell without any branching.
func UnbranchedChain(gid core.CellGID, n int, radius, length, capacitance, restingV float64) *Cell {
	if n < 1 {
		n = 1
	}
	comps := make([]Compartment, n)
	for i := range comps {
		parent := i
		if i > 0 {
			parent = i - 1
		}
		comps[i] = Compartment{ParentLocal: parent, Length: length, Radius: radius, Capacitance: capacitance}
	}
	return &Cell{GID: gid, Compartments: comps, RestingVoltage: restingV}
}
