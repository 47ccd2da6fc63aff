// Package recipe defines the model-description interface consumed by the
// driver to build cell groups and a communicator, plus an in-memory
// implementation used by tests and the CLI in place of a file-format
// parser (explicitly out of scope, see spec.md §1).
package recipe

import (
	"github.com/nestmc/nestmc/cell"
	"github.com/nestmc/nestmc/core"
)

// Probe describes one read-only sampling point requested for a cell: the
// compartment to record and the stride (in accepted integration steps)
// between recordings.
type Probe struct {
	CompartmentIndex int
	Stride           int
}

// Recipe is the model-description interface the driver queries once per
// gid to build cell groups and the connection table. Implementations must
// be pure (side-effect-free) and safe to query concurrently, since the
// driver may resolve several gids from different worker goroutines while
// building cell groups.
type Recipe interface {
	// NumCells returns the total number of cells described by this recipe.
	NumCells() int

	// Cell returns the full description of the cell identified by gid.
	Cell(gid core.CellGID) (*cell.Cell, error)

	// Connections returns every connection whose destination is gid — the
	// incoming connections the driver needs to populate the local
	// communicator's connection table.
	Connections(gid core.CellGID) ([]core.Connection, error)

	// Probes returns the sampling points requested for gid, if any.
	Probes(gid core.CellGID) []Probe
}
