// Package driver implements the top-level epoch loop of spec.md §4.6:
// communication-interval sizing, parallel per-group advancement, spike
// gather, and event-queue dispatch, plus the supporting pieces (a
// goroutine worker pool generalised from the teacher's channel-based
// scheduler, and the spike-file writer of spec.md §6) needed to run it
// end-to-end.
package driver

import (
	"github.com/nestmc/nestmc/backend"
	"github.com/nestmc/nestmc/cell"
	"github.com/nestmc/nestmc/cellgroup"
	"github.com/nestmc/nestmc/comm"
	"github.com/nestmc/nestmc/domain"
	"github.com/nestmc/nestmc/mechanism"
	"github.com/nestmc/nestmc/recipe"
)

// BuildGroups constructs one CellGroup per local group in decomp, resolving
// every cell in its gid range from rec.
func BuildGroups(b backend.Backend, reg *mechanism.Registry, rec recipe.Recipe, decomp *domain.Decomposition) ([]*cellgroup.CellGroup, error) {
	groups := make([]*cellgroup.CellGroup, decomp.NumGroups())
	for i := 0; i < decomp.NumGroups(); i++ {
		begin, end := decomp.Range(i)
		var cells []*cell.Cell
		for gid := begin; gid < end; gid++ {
			c, err := rec.Cell(gid)
			if err != nil {
				return nil, err
			}
			cells = append(cells, c)
		}
		g, err := cellgroup.New(b, reg, cells)
		if err != nil {
			return nil, err
		}
		attachProbes(g, rec, cells)
		groups[i] = g
	}
	return groups, nil
}

// attachProbes wires every probe a recipe requests for a cell in this group
// into a sampler on the group's packed compartment numbering.
func attachProbes(g *cellgroup.CellGroup, rec recipe.Recipe, cells []*cell.Cell) {
	for _, c := range cells {
		ci := g.GIDIndex(c.GID)
		if ci < 0 {
			continue
		}
		for _, p := range rec.Probes(c.GID) {
			s := cellgroup.NewSampler(g.CompartmentIndex(ci, p.CompartmentIndex), p.Stride)
			s.Label(c.GID, p.CompartmentIndex)
			g.AddSampler(s)
		}
	}
}

// BuildCommunicator populates a Communicator's connection table from every
// incoming connection of every gid local to decomp, and constructs it.
func BuildCommunicator(rec recipe.Recipe, decomp *domain.Decomposition, policy comm.Policy) (*comm.Communicator, error) {
	c := comm.New(decomp, policy)
	begin, end := decomp.Bounds[0], decomp.Bounds[len(decomp.Bounds)-1]
	for gid := begin; gid < end; gid++ {
		conns, err := rec.Connections(gid)
		if err != nil {
			return nil, err
		}
		for _, conn := range conns {
			if err := c.AddConnection(conn); err != nil {
				return nil, err
			}
		}
	}
	c.Construct()
	return c, nil
}
