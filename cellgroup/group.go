// Package cellgroup implements the unit of parallel advancement: a batch
// of cells packed into one backend-resident Hines matrix, driven through
// one integration epoch at a time, emitting spikes and consuming delivered
// event queues between epochs.
package cellgroup

import (
	"fmt"

	"github.com/nestmc/nestmc/backend"
	"github.com/nestmc/nestmc/cell"
	"github.com/nestmc/nestmc/core"
	"github.com/nestmc/nestmc/eventqueue"
	"github.com/nestmc/nestmc/matrix"
	"github.com/nestmc/nestmc/mechanism"
)

// target identifies the mechanism instance and local point index a
// connection's destination resolves to, for net_receive dispatch.
type target struct {
	mech  mechanism.Mechanism
	local int
}

// detector tracks one spike-generating point: its compartment, threshold,
// source identity, and enough history to linearly interpolate the exact
// crossing time.
type detector struct {
	compartment int
	threshold   float64
	source      core.CellMember
	prevV       float64
	crossed     bool
}

// CellGroup owns one batch of cells: their packed compartment state, the
// mechanisms contributing current and state to them, an event queue
// delivered before each advance, and the spikes produced during advance.
type CellGroup struct {
	GIDBegin, GIDEnd core.CellGID

	backend backend.Backend
	mat     *matrix.Matrix

	v      []float64 // per-compartment voltage
	itotal []float64 // per-compartment aggregate membrane current, scratch
	cm     []float64 // per-compartment capacitance
	axialG []float64 // per-compartment conductance to parent

	restingV []float64 // per-compartment resting voltage, for Reset

	mechanisms   []mechanism.Mechanism
	mechRestingV []float64 // resting voltage of the cell each mechanism instance belongs to
	targets      map[core.CellMember]target
	detectors    []detector

	ions map[string]*mechanism.SharedIonState // lazily populated per ion kind used by any placed mechanism

	cellOffsets []int // compartment-range boundaries per cell, len(cells)+1
	gids        []core.CellGID

	queue  *eventqueue.Queue
	spikes []core.Spike

	t float64

	samplers []*Sampler
}

// New packs cells into one cell group using b for storage and reg to
// instantiate named mechanisms. Cells must be supplied in ascending gid
// order with no gaps, matching the contiguous [gid_begin, gid_end) range a
// cell group owns.
func New(b backend.Backend, reg *mechanism.Registry, cells []*cell.Cell) (*CellGroup, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("cellgroup: no cells supplied")
	}

	g := &CellGroup{
		backend: b,
		targets: make(map[core.CellMember]target),
		queue:   eventqueue.New(),
		gids:    make([]core.CellGID, len(cells)),
	}
	g.GIDBegin = cells[0].GID
	g.GIDEnd = cells[len(cells)-1].GID + 1

	total := 0
	g.cellOffsets = make([]int, len(cells)+1)
	for i, c := range cells {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		g.gids[i] = c.GID
		g.cellOffsets[i] = total
		total += c.NumCompartments()
	}
	g.cellOffsets[len(cells)] = total

	g.v = b.Alloc(total)
	g.itotal = b.Alloc(total)
	g.cm = make([]float64, total)
	g.axialG = make([]float64, total)
	g.restingV = make([]float64, total)

	parents := make([]int, total)
	for ci, c := range cells {
		base := g.cellOffsets[ci]
		for li, comp := range c.Compartments {
			gi := base + li
			if comp.ParentLocal == li {
				parents[gi] = gi
				g.axialG[gi] = 0
			} else {
				parents[gi] = base + comp.ParentLocal
				g.axialG[gi] = axialConductance(comp)
			}
			g.cm[gi] = comp.Capacitance
			g.v[gi] = c.RestingVoltage
			g.restingV[gi] = c.RestingVoltage
		}

		if err := g.placeMechanisms(reg, c, base); err != nil {
			return nil, err
		}
		for _, d := range c.Detectors {
			g.detectors = append(g.detectors, detector{
				compartment: base + d.CompartmentIndex,
				threshold:   d.Threshold,
				source:      core.CellMember{GID: c.GID, Index: d.LocalIndex},
				prevV:       c.RestingVoltage,
			})
		}
	}

	mat, p, err := matrix.New(b, parents)
	if err != nil {
		return nil, err
	}
	g.mat = mat
	_ = p

	return g, nil
}

// axialConductance derives a simplified axial conductance from a
// compartment's geometry: proportional to cross-sectional area and
// inversely proportional to length and axial resistivity. The engine does
// not claim biophysical unit fidelity (see spec's numerical policy); it
// only needs a conductance that keeps the assembled matrix symmetric
// positive definite.
func axialConductance(c cell.Compartment) float64 {
	ra := c.AxialResistivity
	if ra <= 0 {
		ra = 1
	}
	return (c.Radius * c.Radius) / (ra * c.Length)
}

// ionKinds enumerates the ion species a mechanism may declare via UsesIon;
// there is no open registry for these the way there is for mechanism names,
// since the set of kinds a density mechanism can gate on is fixed by the
// kinetics it implements (spec.md §4.2: "na", "k", "ca").
var ionKinds = []string{"na", "k", "ca"}

func (g *CellGroup) placeMechanisms(reg *mechanism.Registry, c *cell.Cell, base int) error {
	total := len(g.v)
	for _, placement := range c.Mechanisms {
		indices := make([]int, len(placement.CompartmentIndices))
		for i, li := range placement.CompartmentIndices {
			indices[i] = base + li
		}
		m, err := reg.New(placement.Name, indices, placement.Params)
		if err != nil {
			return &core.ModelError{GID: c.GID, Reason: err.Error()}
		}
		m.Init(c.RestingVoltage)
		g.mechanisms = append(g.mechanisms, m)
		g.mechRestingV = append(g.mechRestingV, c.RestingVoltage)

		if len(indices) == 1 {
			key := core.CellMember{GID: c.GID, Index: placement.TargetIndex}
			g.targets[key] = target{mech: m, local: 0}
		}

		for _, kind := range ionKinds {
			if m.UsesIon(kind) {
				m.SetIon(kind, g.ionState(kind, total), indices)
			}
		}
	}
	return nil
}

// ionState returns the group's shared concentration/reversal vectors for
// kind, allocating and zero-initializing them to size on first use. Every
// mechanism that uses the same ion kind within a group shares this state,
// per spec.md §5's single-threaded mechanism-dispatch guarantee.
func (g *CellGroup) ionState(kind string, size int) *mechanism.SharedIonState {
	if g.ions == nil {
		g.ions = make(map[string]*mechanism.SharedIonState)
	}
	ion, ok := g.ions[kind]
	if !ok {
		ion = &mechanism.SharedIonState{
			Kind:          kind,
			Concentration: make([]float64, size),
			Reversal:      make([]float64, size),
		}
		g.ions[kind] = ion
	}
	return ion
}

// DeliverEvents replaces the group's pending event queue with q, ahead of
// the next call to Advance. Called by the model driver once per epoch with
// the queue the communicator prepared in the previous epoch; epoch 0
// delivers an empty queue.
func (g *CellGroup) DeliverEvents(q *eventqueue.Queue) {
	g.queue = q
}

// Spikes returns the read-only slice of spikes produced since the last
// ClearSpikes call.
func (g *CellGroup) Spikes() []core.Spike { return g.spikes }

// ClearSpikes empties the output spike buffer.
func (g *CellGroup) ClearSpikes() { g.spikes = g.spikes[:0] }

// AddSampler registers a probe to be drained after every integration step.
func (g *CellGroup) AddSampler(s *Sampler) { g.samplers = append(g.samplers, s) }

// Samplers returns every sampler registered on this group, for a trace
// writer to read back after a run completes.
func (g *CellGroup) Samplers() []*Sampler { return g.samplers }

// Reset restores every compartment to its resting voltage, re-initializes
// every mechanism, clears pending events and spikes, and resets time to 0.
// Topology (compartment count, parent structure, mechanism placement) is
// preserved.
func (g *CellGroup) Reset() {
	copy(g.v, g.restingV)
	g.backend.Fill(g.itotal, 0)
	for i, m := range g.mechanisms {
		m.Init(g.mechRestingV[i])
	}
	for i := range g.detectors {
		g.detectors[i].prevV = g.restingV[g.detectors[i].compartment]
		g.detectors[i].crossed = false
	}
	g.queue = eventqueue.New()
	g.spikes = nil
	g.t = 0
	for _, s := range g.samplers {
		s.clear()
	}
}

// Time returns the group's current simulated time.
func (g *CellGroup) Time() float64 { return g.t }

// CompartmentIndex translates a local compartment index on the cellIndex-th
// cell in this group (0-based, in construction order) into the group's
// packed global compartment numbering, for callers attaching samplers by
// gid and per-cell compartment index (e.g. a recipe's probe list).
func (g *CellGroup) CompartmentIndex(cellIndex, localCompartment int) int {
	return g.cellOffsets[cellIndex] + localCompartment
}

// GIDIndex returns the 0-based position of gid among this group's cells,
// or -1 if gid does not belong to this group.
func (g *CellGroup) GIDIndex(gid core.CellGID) int {
	for i, id := range g.gids {
		if id == gid {
			return i
		}
	}
	return -1
}
