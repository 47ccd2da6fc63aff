package driver

import (
	"fmt"

	"github.com/nestmc/nestmc/cellgroup"
	"github.com/nestmc/nestmc/comm"
	"github.com/nestmc/nestmc/core"
	"github.com/nestmc/nestmc/eventqueue"
)

// Driver owns the full set of local cell groups and the communicator for
// the lifetime of one run, and implements the epoch loop of spec.md §4.6.
type Driver struct {
	groups []*cellgroup.CellGroup
	comm   *comm.Communicator
	dt     float64
	pool   *workerPool

	recorded []core.Spike

	// Samplers are not model input; probe results are read from the
	// groups directly after Run returns.
}

// New returns a Driver over groups, exchanging spikes through communicator,
// integrating with a fixed step of dt.
func New(groups []*cellgroup.CellGroup, communicator *comm.Communicator, dt float64) *Driver {
	return &Driver{groups: groups, comm: communicator, dt: dt, pool: newWorkerPool()}
}

// Run executes the epoch loop from t=0 to tEnd: the communication interval
// Δc is half the network's global minimum delay; each epoch delivers the
// event queues the previous epoch's exchange produced, advances every
// group in parallel up to the epoch's end time, gathers local spikes into
// one global exchange, and turns the result into the next epoch's event
// queues. Epoch 0 delivers an empty queue to every group. Run returns the
// first fatal error encountered by any group or by the communicator.
func (d *Driver) Run(tEnd float64) error {
	raw, err := d.comm.MinDelay()
	if err != nil {
		return fmt.Errorf("driver: %w", err)
	}
	deltaC := raw / 2
	if deltaC <= 0 {
		return fmt.Errorf("driver: non-positive communication interval %v", deltaC)
	}

	queues := make([]*eventqueue.Queue, len(d.groups))
	for i := range queues {
		queues[i] = eventqueue.New()
	}

	for t0 := 0.0; t0 < tEnd; {
		t1 := t0 + deltaC
		if t1 > tEnd {
			t1 = tEnd
		}

		for i, g := range d.groups {
			g.DeliverEvents(queues[i])
		}

		if err := d.pool.advanceAll(d.groups, t1, d.dt); err != nil {
			return fmt.Errorf("driver: %w", err)
		}

		var local []core.Spike
		for _, g := range d.groups {
			local = append(local, g.Spikes()...)
		}

		global, err := d.comm.Exchange(local)
		if err != nil {
			return fmt.Errorf("driver: %w", err)
		}
		d.recorded = append(d.recorded, global.Values...)
		queues, err = d.comm.MakeEventQueues(global)
		if err != nil {
			return fmt.Errorf("driver: %w", err)
		}

		for _, g := range d.groups {
			g.ClearSpikes()
		}

		t0 = t1
	}
	return nil
}

// Groups returns the driver's local cell groups, for inspecting sampler
// output or final state after Run returns.
func (d *Driver) Groups() []*cellgroup.CellGroup { return d.groups }

// Recorded returns every spike exchanged over the lifetime of this driver,
// in the order each epoch's gather produced them. Unlike a group's own
// Spikes(), which is cleared every epoch, this accumulates for the whole
// run, matching what a spike_file_output writer consumes.
func (d *Driver) Recorded() []core.Spike { return d.recorded }
