package recipe

import (
	"github.com/nestmc/nestmc/cell"
	"github.com/nestmc/nestmc/core"
)

// Memory is a Recipe built directly in Go, declaratively, with no file
// format or parser: the explicit substitute for the recipe-to-cell
// construction façade spec.md §1 puts out of scope.
type Memory struct {
	cells       map[core.CellGID]*cell.Cell
	order       []core.CellGID
	connections map[core.CellGID][]core.Connection
	probes      map[core.CellGID][]Probe
}

// NewMemory returns an empty in-memory recipe.
func NewMemory() *Memory {
	return &Memory{
		cells:       make(map[core.CellGID]*cell.Cell),
		connections: make(map[core.CellGID][]core.Connection),
		probes:      make(map[core.CellGID][]Probe),
	}
}

// AddCell adds or replaces the description of c.GID.
func (m *Memory) AddCell(c *cell.Cell) {
	if _, exists := m.cells[c.GID]; !exists {
		m.order = append(m.order, c.GID)
	}
	m.cells[c.GID] = c
}

// AddConnection indexes conn under its destination gid.
func (m *Memory) AddConnection(conn core.Connection) {
	m.connections[conn.Destination.GID] = append(m.connections[conn.Destination.GID], conn)
}

// AddProbe requests sampling of p on the cell identified by gid.
func (m *Memory) AddProbe(gid core.CellGID, p Probe) {
	m.probes[gid] = append(m.probes[gid], p)
}

func (m *Memory) NumCells() int { return len(m.order) }

func (m *Memory) Cell(gid core.CellGID) (*cell.Cell, error) {
	c, ok := m.cells[gid]
	if !ok {
		return nil, &core.ModelError{GID: gid, Reason: "recipe: no cell with this gid"}
	}
	return c, nil
}

func (m *Memory) Connections(gid core.CellGID) ([]core.Connection, error) {
	if _, ok := m.cells[gid]; !ok {
		return nil, &core.ModelError{GID: gid, Reason: "recipe: no cell with this gid"}
	}
	return m.connections[gid], nil
}

func (m *Memory) Probes(gid core.CellGID) []Probe { return m.probes[gid] }
