package cell

import "github.com/nestmc/nestmc/core"

// Validate checks the invariants of the data model: one distinguished root,
// a non-empty compartment count, parameters within declared ranges, and
// mechanism/detector placements that reference real compartments.
func (c *Cell) Validate() error {
	if len(c.Compartments) == 0 {
		return &core.ModelError{GID: c.GID, Reason: "cell has no compartments"}
	}

	roots := 0
	for i, comp := range c.Compartments {
		if comp.ParentLocal == i {
			roots++
		} else if comp.ParentLocal < 0 || comp.ParentLocal >= len(c.Compartments) {
			return &core.ModelError{GID: c.GID, Reason: "compartment parent index out of range"}
		} else if comp.ParentLocal >= i {
			return &core.ModelError{GID: c.GID, Reason: "non-root compartment parent index must be less than its own index"}
		}
		if comp.Length <= 0 || comp.Radius <= 0 || comp.Capacitance <= 0 {
			return &core.ModelError{GID: c.GID, Reason: "compartment geometry must be strictly positive"}
		}
	}
	if roots != 1 {
		return &core.ModelError{GID: c.GID, Reason: "cell must have exactly one root compartment"}
	}

	for _, m := range c.Mechanisms {
		for _, idx := range m.CompartmentIndices {
			if idx < 0 || idx >= len(c.Compartments) {
				return &core.ModelError{GID: c.GID, Reason: "mechanism placement references non-existent compartment"}
			}
		}
	}
	for _, d := range c.Detectors {
		if d.CompartmentIndex < 0 || d.CompartmentIndex >= len(c.Compartments) {
			return &core.ModelError{GID: c.GID, Reason: "detector references non-existent compartment"}
		}
	}
	return nil
}
