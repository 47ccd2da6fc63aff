package mechanism

import "fmt"

// Constructor builds a Mechanism instance placed on the given compartment
// or point indices, configured by params. indices has length 1 for a point
// mechanism (a single synapse placement) and one entry per compartment for
// a density mechanism spread across several compartments.
type Constructor func(indices []int, params map[string]float64) (Mechanism, error)

// Registry maps mechanism names to constructors, mirroring the teacher's
// opcode-indexed kernel catalog but open-ended and keyed by name, since
// mechanism kinds are supplied by model descriptions rather than fixed at
// compile time.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry returns a Registry pre-populated with the built-in mechanism
// kinds: passive, hh, expsyn, exp2syn.
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[string]Constructor)}
	r.Register("passive", newPassive)
	r.Register("hh", newHH)
	r.Register("expsyn", newExpSyn)
	r.Register("exp2syn", newExp2Syn)
	return r
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, ctor Constructor) {
	r.ctors[name] = ctor
}

// New builds a Mechanism of the named kind placed at indices with params.
func (r *Registry) New(name string, indices []int, params map[string]float64) (Mechanism, error) {
	ctor, ok := r.ctors[name]
	if !ok {
		return nil, fmt.Errorf("mechanism: unknown kind %q", name)
	}
	return ctor(indices, params)
}

// Names returns every registered mechanism kind.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	return names
}
