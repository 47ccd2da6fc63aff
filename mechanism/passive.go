package mechanism

// passive is a leak channel: a density mechanism with no state, contributing
// a constant conductance toward a resting reversal potential on every
// compartment it is placed on.
type passive struct {
	indices []int
	g       float64 // conductance, S/cm^2
	erev    float64 // reversal potential, mV
}

func newPassive(indices []int, params map[string]float64) (Mechanism, error) {
	return &passive{
		indices: indices,
		g:       paramOr(params, "g", 0.001),
		erev:    paramOr(params, "e", -70),
	}, nil
}

func (p *passive) Name() string { return "passive" }

func (p *passive) Init(restingV float64) {}

func (p *passive) Current(v []float64, i []float64) {
	for _, idx := range p.indices {
		i[idx] += p.g * (v[idx] - p.erev)
	}
}

func (p *passive) State(v []float64, dt float64) {}

func (p *passive) NetReceive(localIndex int, weight float64) {}

func (p *passive) UsesIon(kind string) bool { return false }

func (p *passive) SetIon(kind string, ion *SharedIonState, indexMap []int) {}
