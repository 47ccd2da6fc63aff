// Package comm implements the connection table, the all-to-all spike
// exchange, and the global-spike-to-per-group-event-queue conversion that
// together form the communicator, generalised exactly from Arbor's
// nest::mc::communication::communicator (src/communication/communicator.hpp
// in the retrieved original sources).
package comm

import "github.com/nestmc/nestmc/core"

// Policy is the communication-policy interface consumed by a Communicator:
// rank identity, an all-reduce minimum, and an all-to-all-v spike gather.
// Every implementation must be collective — each rank calls every method
// exactly once per call, in matching order — so a Policy can be swapped
// for a real distributed transport without the Communicator changing.
type Policy interface {
	// Rank returns this process's rank index.
	Rank() int

	// Size returns the number of participating ranks.
	Size() int

	// Min performs a collective all-reduce minimum over x.
	Min(x float64) float64

	// GatherSpikes performs a collective all-to-all-v gather of local,
	// returning the same core.GatheredVector on every rank.
	GatherSpikes(local []core.Spike) (core.GatheredVector, error)
}
