// Package cell describes the branching compartmental structure of a single
// cell: its compartments, their geometry, the mechanisms placed on them,
// and any detector points. A cell.Cell is pure data; cellgroup packs many
// cells' compartments into one backend-resident matrix and drives them
// together.
package cell

import "github.com/nestmc/nestmc/core"

// Compartment is one finite-volume element of a discretised segment: its
// geometry, and the index (within this cell, not the packed group) of its
// parent compartment. A compartment whose ParentLocal equals its own index
// is the cell's root (the soma, by convention compartment 0).
type Compartment struct {
	ParentLocal      int
	Length           float64 // micrometres
	Radius           float64 // micrometres
	Capacitance      float64 // microfarads
	AxialResistivity float64 // ohm-cm, ignored for the root compartment
}

// MechanismPlacement attaches a named mechanism to one or more
// compartments. A single-entry CompartmentIndices list places a point
// mechanism (a synapse); a multi-entry list places a density mechanism
// (e.g. hh, passive) spread across those compartments, sharing one
// parameter set and one set of gating-variable instances.
type MechanismPlacement struct {
	Name               string
	CompartmentIndices []int
	Params             map[string]float64

	// TargetIndex is the local index a point mechanism (a synapse) is
	// addressed by for event delivery; a connection's destination
	// cell_member is (gid, TargetIndex). Ignored for density mechanisms.
	TargetIndex core.CellLocalIndex
}

// Detector is a point whose upward voltage-threshold crossing emits a
// spike, identified within the cell by LocalIndex (starting at 0).
type Detector struct {
	LocalIndex       core.CellLocalIndex
	CompartmentIndex int
	Threshold        float64
}

// Cell is the full description of one cell: its compartment tree, the
// mechanisms placed on it, its detectors, and the voltage every compartment
// starts at.
type Cell struct {
	GID            core.CellGID
	Compartments   []Compartment
	Mechanisms     []MechanismPlacement
	Detectors      []Detector
	RestingVoltage float64
}

// NumCompartments returns the number of compartments in this cell.
func (c *Cell) NumCompartments() int { return len(c.Compartments) }

// RootIndex returns the index of the cell's single distinguished root
// compartment (the soma), or -1 if none is found.
func (c *Cell) RootIndex() int {
	for i, comp := range c.Compartments {
		if comp.ParentLocal == i {
			return i
		}
	}
	return -1
}
