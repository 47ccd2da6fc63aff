package comm

import (
	"fmt"
	"math"

	"github.com/nestmc/nestmc/core"
	"github.com/nestmc/nestmc/domain"
	"github.com/nestmc/nestmc/eventqueue"
)

// Communicator holds the connection table for this rank and drives the
// global spike exchange. AddConnection may be called freely until
// Construct sorts the table; after that the table is read-only and may be
// read concurrently by any worker during MakeEventQueues.
type Communicator struct {
	connections []core.Connection
	policy      Policy
	decomp      *domain.Decomposition
	numSpikes   uint64
	constructed bool
}

// New returns a Communicator for the local cell groups described by
// decomp, exchanging spikes through policy.
func New(decomp *domain.Decomposition, policy Policy) *Communicator {
	return &Communicator{decomp: decomp, policy: policy}
}

// AddConnection validates that c's destination is local to this rank and
// appends it to the table. Must be called before Construct.
func (c *Communicator) AddConnection(conn core.Connection) error {
	if !c.decomp.IsLocal(conn.Destination.GID) {
		return fmt.Errorf("comm: destination %v is not local to this rank", conn.Destination)
	}
	if conn.Delay <= 0 {
		return fmt.Errorf("comm: connection %v->%v has non-positive delay", conn.Source, conn.Destination)
	}
	c.connections = append(c.connections, conn)
	return nil
}

// Construct sorts the connection table by source, stably breaking ties by
// destination, and must be called exactly once after every connection has
// been added and before MinDelay, Exchange, or MakeEventQueues run.
func (c *Communicator) Construct() {
	core.SortConnectionsBySource(c.connections)
	c.constructed = true
}

// Connections returns the sorted connection table. Safe to call
// concurrently once Construct has run.
func (c *Communicator) Connections() []core.Connection { return c.connections }

// MinDelay returns the global minimum delay over every connection on every
// rank: the local minimum, all-reduced with the communication policy. It
// defines the communication interval used by the model driver's epoch
// loop, and is the only blocking call made once at startup.
func (c *Communicator) MinDelay() (float64, error) {
	localMin := math.Inf(1)
	for _, conn := range c.connections {
		if conn.Delay < localMin {
			localMin = conn.Delay
		}
	}
	global := c.policy.Min(localMin)
	if math.IsInf(global, 1) {
		return 0, fmt.Errorf("comm: no connections exist anywhere in the network")
	}
	return global, nil
}

// Exchange performs the one-per-epoch all-to-all-v gather of local_spikes
// produced on this rank, returning the full global spike set with its
// per-rank partition. Every rank sees a byte-equal result.
func (c *Communicator) Exchange(localSpikes []core.Spike) (core.GatheredVector, error) {
	global, err := c.policy.GatherSpikes(localSpikes)
	if err != nil {
		return core.GatheredVector{}, err
	}
	c.numSpikes += uint64(len(global.Values))
	return global, nil
}

// MakeEventQueues checks every global spike for local targets and builds
// one event_queue per local cell group. For each spike, the equal range of
// connections sharing its source is found by binary search on the
// source-sorted table (construct's invariant), and each match generates a
// posted event pushed into the queue of the local group owning its
// destination.
func (c *Communicator) MakeEventQueues(global core.GatheredVector) ([]*eventqueue.Queue, error) {
	if !c.constructed {
		return nil, fmt.Errorf("comm: make_event_queues called before construct")
	}
	queues := make([]*eventqueue.Queue, c.decomp.NumGroups())
	for i := range queues {
		queues[i] = eventqueue.New()
	}

	for _, spike := range global.Values {
		lo, hi := core.EqualRangeBySource(c.connections, spike.Source)
		for _, conn := range c.connections[lo:hi] {
			idx, err := c.decomp.GroupIndex(conn.Destination.GID)
			if err != nil {
				return nil, fmt.Errorf("comm: %w", err)
			}
			queues[idx].Push(conn.MakeEvent(spike))
		}
	}
	return queues, nil
}

// NumSpikes returns the total number of global spikes exchanged over the
// lifetime of this communicator.
func (c *Communicator) NumSpikes() uint64 { return c.numSpikes }

// Reset clears the spike counter; the connection table and construction
// state are left untouched, matching the communicator's own lifecycle
// (topology survives a reset, only run-scoped counters do not).
func (c *Communicator) Reset() { c.numSpikes = 0 }
