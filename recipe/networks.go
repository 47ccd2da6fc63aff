package recipe

import (
	"github.com/nestmc/nestmc/cell"
	"github.com/nestmc/nestmc/core"
)

// NetworkParams collects the configuration-surface options (spec.md §6)
// that actually shape the cells and probes Ring/AllToAll build: how many
// cells, the uniform connection weight/delay, the cell's own compartment
// and synapse count/kind, and which cells get a recording probe.
type NetworkParams struct {
	Cells  int
	Weight float64
	Delay  float64

	CompartmentsPerSegment int    // compartments per cell; < 1 treated as 1
	SynapsesPerCell        int    // point-synapse instances per cell; < 1 treated as 1
	SynType                string // "expsyn" or "exp2syn"; "" treated as "expsyn"

	ProbeRatio    float64       // fraction of cells, in [0, 1], that get a probe
	ProbeSomaOnly bool          // probe only compartment 0 instead of every compartment
	TraceMaxGID   *core.CellGID // if set, never probe a cell with gid above this
}

func (p NetworkParams) compartments() int {
	if p.CompartmentsPerSegment < 1 {
		return 1
	}
	return p.CompartmentsPerSegment
}

func (p NetworkParams) synapses() int {
	if p.SynapsesPerCell < 1 {
		return 1
	}
	return p.SynapsesPerCell
}

func (p NetworkParams) synType() string {
	if p.SynType == "" {
		return "expsyn"
	}
	return p.SynType
}

func synapseParams(synType string) map[string]float64 {
	if synType == "exp2syn" {
		return map[string]float64{"tau1": 0.5, "tau2": 5, "e": 0}
	}
	return map[string]float64{"tau": 2, "e": 0}
}

// excitableSoma returns a cell built to p's compartment/synapse shape: an
// unbranched chain of p.compartments() compartments, HH at the root (index
// 0), p.synapses() point-synapse instances of p.synType() spread round-robin
// over the chain and individually addressable as cell_member targets 0..n-1,
// and one detector at the root.
func excitableSoma(gid core.CellGID, p NetworkParams, threshold float64) *cell.Cell {
	n := p.compartments()
	c := cell.UnbranchedChain(gid, n, 10, 10, 0.01, -65)
	c.Mechanisms = []cell.MechanismPlacement{
		{Name: "hh", CompartmentIndices: []int{0}},
	}

	synType := p.synType()
	params := synapseParams(synType)
	for k := 0; k < p.synapses(); k++ {
		c.Mechanisms = append(c.Mechanisms, cell.MechanismPlacement{
			Name:               synType,
			CompartmentIndices: []int{k % n},
			Params:             params,
			TargetIndex:        core.CellLocalIndex(k),
		})
	}

	c.Detectors = []cell.Detector{{LocalIndex: 0, CompartmentIndex: 0, Threshold: threshold}}
	return c
}

// attachProbes selects which cells get a recording probe, spreading
// p.ProbeRatio's fraction evenly across the cell population (a running
// accumulator rather than a stride, so a ratio like 0.3 still lands
// roughly 3 probes per 10 cells instead of rounding down to 0), honoring
// ProbeSomaOnly and TraceMaxGID.
func attachProbes(m *Memory, p NetworkParams) {
	if p.ProbeRatio <= 0 {
		return
	}
	n := p.compartments()
	acc := 0.0
	for i := 0; i < p.Cells; i++ {
		acc += p.ProbeRatio
		if acc < 1.0 {
			continue
		}
		acc -= 1.0

		gid := core.CellGID(i)
		if p.TraceMaxGID != nil && gid > *p.TraceMaxGID {
			continue
		}
		if p.ProbeSomaOnly {
			m.AddProbe(gid, Probe{CompartmentIndex: 0, Stride: 1})
			continue
		}
		for c := 0; c < n; c++ {
			m.AddProbe(gid, Probe{CompartmentIndex: c, Stride: 1})
		}
	}
}

// Ring builds an in-memory recipe of p.Cells excitable cells wired
// source[i] -> destination[(i+1) mod n] at p.Weight/p.Delay, targeting
// synapse instance i mod p.synapses() on the destination, mirroring the
// miniapp's "ring" network generator.
func Ring(p NetworkParams) *Memory {
	m := NewMemory()
	n := p.Cells
	synapses := p.synapses()
	for i := 0; i < n; i++ {
		m.AddCell(excitableSoma(core.CellGID(i), p, -10))
	}
	for i := 0; i < n; i++ {
		src := core.CellMember{GID: core.CellGID(i), Index: 0}
		dst := core.CellMember{GID: core.CellGID((i + 1) % n), Index: core.CellLocalIndex(i % synapses)}
		m.AddConnection(core.Connection{Source: src, Destination: dst, Weight: p.Weight, Delay: p.Delay})
	}
	attachProbes(m, p)
	return m
}

// AllToAll builds an in-memory recipe of p.Cells excitable cells where
// every ordered pair (i, j) with i != j carries a connection at p.Weight/
// p.Delay, round-robining each destination's incoming connections over its
// p.synapses() synapse instances by source gid so a synapses_per_cell > 1
// actually spreads load across distinct targets, mirroring the miniapp's
// "all-to-all" network generator.
func AllToAll(p NetworkParams) *Memory {
	m := NewMemory()
	n := p.Cells
	synapses := p.synapses()
	for i := 0; i < n; i++ {
		m.AddCell(excitableSoma(core.CellGID(i), p, -10))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			src := core.CellMember{GID: core.CellGID(i), Index: 0}
			dst := core.CellMember{GID: core.CellGID(j), Index: core.CellLocalIndex(i % synapses)}
			m.AddConnection(core.Connection{Source: src, Destination: dst, Weight: p.Weight, Delay: p.Delay})
		}
	}
	attachProbes(m, p)
	return m
}
