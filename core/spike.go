package core

// Spike is an immutable threshold-crossing event: the detector that fired,
// and the exact crossing time.
type Spike struct {
	Source CellMember
	Time   float64
}
