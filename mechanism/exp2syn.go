package mechanism

import "math"

// exp2Syn is a double-exponential conductance synapse with separate rise
// (tauRise) and decay (tauDecay) time constants. It is modeled as the
// difference of two exponentially decaying state variables, each stepped up
// by a normalized weight on a net_receive, following the standard two-state
// formulation (NEURON's Exp2Syn) rather than a single non-separable ODE.
type exp2Syn struct {
	index            int
	tauRise, tauDecay float64
	erev             float64
	normFactor       float64
	a, b             float64
}

func newExp2Syn(indices []int, params map[string]float64) (Mechanism, error) {
	if len(indices) != 1 {
		return nil, errPointMechanismArity("exp2syn", len(indices))
	}
	tauRise := paramOr(params, "tau1", 0.5)
	tauDecay := paramOr(params, "tau2", 5.0)
	s := &exp2Syn{
		index:    indices[0],
		tauRise:  tauRise,
		tauDecay: tauDecay,
		erev:     paramOr(params, "e", 0.0),
	}
	s.normFactor = exp2NormFactor(tauRise, tauDecay)
	return s, nil
}

// exp2NormFactor computes the peak-normalizing factor so that a single unit
// weight event produces a peak conductance of 1.
func exp2NormFactor(tauRise, tauDecay float64) float64 {
	if tauRise >= tauDecay {
		tauRise = tauDecay * 0.999
	}
	tPeak := (tauRise * tauDecay) / (tauDecay - tauRise) * math.Log(tauDecay/tauRise)
	factor := -math.Exp(-tPeak/tauRise) + math.Exp(-tPeak/tauDecay)
	if factor == 0 {
		return 1
	}
	return 1 / factor
}

func (s *exp2Syn) Name() string { return "exp2syn" }

func (s *exp2Syn) Init(restingV float64) { s.a, s.b = 0, 0 }

func (s *exp2Syn) conductance() float64 {
	return s.normFactor * (s.b - s.a)
}

func (s *exp2Syn) Current(v []float64, i []float64) {
	i[s.index] += s.conductance() * (v[s.index] - s.erev)
}

func (s *exp2Syn) State(v []float64, dt float64) {
	s.a *= math.Exp(-dt / s.tauRise)
	s.b *= math.Exp(-dt / s.tauDecay)
}

func (s *exp2Syn) NetReceive(localIndex int, weight float64) {
	s.a += weight
	s.b += weight
}

func (s *exp2Syn) UsesIon(kind string) bool { return false }

func (s *exp2Syn) SetIon(kind string, ion *SharedIonState, indexMap []int) {}
