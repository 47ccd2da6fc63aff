package mechanism

import "math"

// hh implements the classic Hodgkin-Huxley sodium/potassium/leak kinetics as
// a density mechanism. Gating variables are advanced with the Rush-Larsen
// exponential integrator appropriate to first-order gate kinetics
// (x' = (x_inf - x) / tau), which is unconditionally stable for any dt and
// is the implicit-style update the matrix/cable solver design calls for on
// HH-like channels.
type hh struct {
	indices []int
	gNa     float64
	gK      float64
	gL      float64
	eNa     float64
	eK      float64
	eL      float64

	m, h, n []float64

	ion      *SharedIonState
	ionIndex []int // c.indices[k] translated into ion's array numbering, set by SetIon
}

func newHH(indices []int, params map[string]float64) (Mechanism, error) {
	return &hh{
		indices: indices,
		gNa:     paramOr(params, "gnabar", 120),
		gK:      paramOr(params, "gkbar", 36),
		gL:      paramOr(params, "gl", 0.3),
		eNa:     paramOr(params, "ena", 50),
		eK:      paramOr(params, "ek", -77),
		eL:      paramOr(params, "el", -54.3),
		m:       make([]float64, len(indices)),
		h:       make([]float64, len(indices)),
		n:       make([]float64, len(indices)),
	}, nil
}

func (c *hh) Name() string { return "hh" }

func (c *hh) Init(restingV float64) {
	am, bm := hhAlphaBetaM(restingV)
	ah, bh := hhAlphaBetaH(restingV)
	an, bn := hhAlphaBetaN(restingV)
	for i := range c.indices {
		c.m[i] = am / (am + bm)
		c.h[i] = ah / (ah + bh)
		c.n[i] = an / (an + bn)
	}
}

func (c *hh) eNaFor(k int) float64 {
	if c.ion != nil {
		return c.ion.Reversal[c.ionIndex[k]]
	}
	return c.eNa
}

func (c *hh) Current(v []float64, i []float64) {
	for k, idx := range c.indices {
		vv := v[idx]
		m, h, n := c.m[k], c.h[k], c.n[k]
		iNa := c.gNa * m * m * m * h * (vv - c.eNaFor(k))
		iK := c.gK * n * n * n * n * (vv - c.eK)
		iL := c.gL * (vv - c.eL)
		i[idx] += iNa + iK + iL
	}
}

func (c *hh) State(v []float64, dt float64) {
	for k, idx := range c.indices {
		vv := v[idx]

		am, bm := hhAlphaBetaM(vv)
		mInf, mTau := am/(am+bm), 1/(am+bm)
		c.m[k] = rushLarsen(c.m[k], mInf, mTau, dt)

		ah, bh := hhAlphaBetaH(vv)
		hInf, hTau := ah/(ah+bh), 1/(ah+bh)
		c.h[k] = rushLarsen(c.h[k], hInf, hTau, dt)

		an, bn := hhAlphaBetaN(vv)
		nInf, nTau := an/(an+bn), 1/(an+bn)
		c.n[k] = rushLarsen(c.n[k], nInf, nTau, dt)
	}
}

func (c *hh) NetReceive(localIndex int, weight float64) {}

func (c *hh) UsesIon(kind string) bool { return kind == "na" }

func (c *hh) SetIon(kind string, ion *SharedIonState, indexMap []int) {
	if kind != "na" {
		return
	}
	c.ion = ion
	c.ionIndex = indexMap
	for _, idx := range indexMap {
		ion.Reversal[idx] = c.eNa
	}
}

func rushLarsen(x, xInf, tau, dt float64) float64 {
	return xInf + (x-xInf)*math.Exp(-dt/tau)
}

// hhAlphaBetaM, hhAlphaBetaH, hhAlphaBetaN are the standard HH rate
// functions at membrane potential v (mV), referenced to resting potential
// 0 as in the original 1952 parameterization (v here is absolute, shifted
// by +65 mV internally to match that convention).
func hhAlphaBetaM(v float64) (alpha, beta float64) {
	x := v + 40
	alpha = hhRate(0.1, x, 10)
	beta = 4 * math.Exp(-(v + 65) / 18)
	return
}

func hhAlphaBetaH(v float64) (alpha, beta float64) {
	alpha = 0.07 * math.Exp(-(v + 65) / 20)
	beta = 1 / (math.Exp(-(v+35)/10) + 1)
	return
}

func hhAlphaBetaN(v float64) (alpha, beta float64) {
	x := v + 55
	alpha = hhRate(0.01, x, 10)
	beta = 0.125 * math.Exp(-(v + 65) / 80)
	return
}

// hhRate evaluates the rate function c*x / (exp(x/k) - 1), taking the
// analytic limit c*k when x is close enough to zero that a direct
// evaluation would divide by a near-zero denominator.
func hhRate(c, x, k float64) float64 {
	if math.Abs(x) < 1e-6 {
		return c * k
	}
	return c * x / (math.Exp(x/k) - 1)
}
