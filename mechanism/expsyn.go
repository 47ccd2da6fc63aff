package mechanism

import "math"

// expSyn is a single-exponential conductance synapse: an incoming event
// steps the conductance up by the event's weight, after which it decays
// exponentially with time constant tau. The decay is exact (no
// discretization error) since the governing ODE g' = -g/tau is linear and
// autonomous.
type expSyn struct {
	index int
	tau   float64
	erev  float64
	g     float64
}

func newExpSyn(indices []int, params map[string]float64) (Mechanism, error) {
	if len(indices) != 1 {
		return nil, errPointMechanismArity("expsyn", len(indices))
	}
	return &expSyn{
		index: indices[0],
		tau:   paramOr(params, "tau", 2.0),
		erev:  paramOr(params, "e", 0.0),
	}, nil
}

func (s *expSyn) Name() string { return "expsyn" }

func (s *expSyn) Init(restingV float64) { s.g = 0 }

func (s *expSyn) Current(v []float64, i []float64) {
	i[s.index] += s.g * (v[s.index] - s.erev)
}

func (s *expSyn) State(v []float64, dt float64) {
	s.g *= math.Exp(-dt / s.tau)
}

func (s *expSyn) NetReceive(localIndex int, weight float64) {
	s.g += weight
}

func (s *expSyn) UsesIon(kind string) bool { return false }

func (s *expSyn) SetIon(kind string, ion *SharedIonState, indexMap []int) {}

func errPointMechanismArity(name string, n int) error {
	return &pointArityError{name: name, n: n}
}

type pointArityError struct {
	name string
	n    int
}

func (e *pointArityError) Error() string {
	return "mechanism: point mechanism " + e.name + " requires exactly one placement index"
}
