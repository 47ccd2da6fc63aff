package core

// PostedEvent is a synaptic event scheduled for delivery at Time, computed as
// the originating spike's time plus the connection's delay.
type PostedEvent struct {
	Target CellMember
	Time   float64
	Weight float64
}
