// Package mechanism implements named ion-channel and synapse kinetics that
// contribute current and, optionally, state to the compartments of a cell
// group. A registry maps mechanism names to constructors, the way the
// teacher repo's kernel catalog maps opcodes to kernel functions
// (kernels/ops.go), generalised from a fixed byte-indexed array to an
// open, name-keyed registry since mechanism kinds are not bounded ahead of
// time the way kernel opcodes are.
package mechanism

// Mechanism is a stateful contributor to compartment currents and, for
// point mechanisms, to synaptic state. Implementations must not allocate
// inside Current or State; all scratch storage is acquired in the
// constructor returned by a Registry entry.
type Mechanism interface {
	// Name identifies the mechanism kind, e.g. "hh", "passive", "expsyn".
	Name() string

	// Init initializes per-instance state to steady-state for restingV.
	Init(restingV float64)

	// Current adds this mechanism's contribution into i, a per-compartment
	// current accumulator shared by every mechanism in the cell group. v is
	// the current voltage of every compartment in the group. Both are
	// indexed by the group's global compartment numbering; the mechanism
	// only ever touches the indices it was placed on.
	Current(v []float64, i []float64)

	// State advances gating and synaptic state variables by one timestep of
	// length dt, using whichever integrator the kinetics calls for
	// (implicit for Hodgkin-Huxley-like gates, analytic/exponential for
	// synapses).
	State(v []float64, dt float64)

	// NetReceive handles a synaptic event delivered to the point instance
	// at localIndex, with the connection's weight. Only point mechanisms
	// (synapses) implement this meaningfully; density mechanisms (hh,
	// passive) accept the call and ignore it. Repeated calls with the same
	// sequence of (time, localIndex, weight) triples yield identical state,
	// since nothing here depends on wall-clock time.
	NetReceive(localIndex int, weight float64)

	// UsesIon reports whether this mechanism reads or writes shared ion
	// state of the given kind ("na", "k", "ca", ...).
	UsesIon(kind string) bool

	// SetIon wires this mechanism to the shared ion state owned by the
	// cell group, using indexMap to translate the mechanism's local
	// placement indices into indices into ion's concentration/reversal
	// arrays.
	SetIon(kind string, ion *SharedIonState, indexMap []int)
}

// SharedIonState holds per-compartment ionic concentration and reversal
// potential, owned by a cell group and shared read-write across every
// mechanism that uses that ion kind. The cell group serializes all
// mechanism dispatch within one advance, so concurrent mutation never
// occurs.
type SharedIonState struct {
	Kind          string
	Concentration []float64
	Reversal      []float64
}
