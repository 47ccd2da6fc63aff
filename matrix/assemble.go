package matrix

import "github.com/nestmc/nestmc/backend"

// Assemble rebuilds D, U, and RHS for one implicit step of length dt from
// per-compartment capacitance cm, axial conductance to parent axialG (0 at
// a cell's root), the current voltage v, and the aggregate membrane current
// itotal contributed by every mechanism's Current() call this step. All
// slices must have length m.Size() and share m's packed compartment
// numbering.
func (m *Matrix) Assemble(b backend.Backend, axialG, cm, v, itotal []float64, dt float64) {
	b.Fill(m.D, 0)
	b.Fill(m.U, 0)

	for i := range m.D {
		if m.P[i] != i {
			g := axialG[i]
			m.D[i] += g
			m.D[m.P[i]] += g
			m.U[i] = -g
		}
		m.D[i] += cm[i] / dt
		m.RHS[i] = cm[i]/dt*v[i] - itotal[i]
	}
}

// Solve runs the backend's tridiagonal solve on the assembled system,
// leaving the new voltages in RHS.
func (m *Matrix) Solve(b backend.Backend) error {
	return b.SolveTridiag(m.P, m.D, m.U, m.RHS)
}
