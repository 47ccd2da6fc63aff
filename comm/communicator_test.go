package comm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestmc/nestmc/core"
	"github.com/nestmc/nestmc/domain"
)

func newTestDecomp(t *testing.T) *domain.Decomposition {
	t.Helper()
	d, err := domain.EvenSplit(0, 4, 1)
	require.NoError(t, err)
	return d
}

func TestConstructSortsBySource(t *testing.T) {
	c := New(newTestDecomp(t), SerialPolicy{})
	require.NoError(t, c.AddConnection(core.Connection{
		Source: core.CellMember{GID: 3}, Destination: core.CellMember{GID: 1}, Delay: 1,
	}))
	require.NoError(t, c.AddConnection(core.Connection{
		Source: core.CellMember{GID: 1}, Destination: core.CellMember{GID: 0}, Delay: 1,
	}))
	require.NoError(t, c.AddConnection(core.Connection{
		Source: core.CellMember{GID: 2}, Destination: core.CellMember{GID: 2}, Delay: 1,
	}))

	c.Construct()
	require.True(t, core.IsSortedBySource(c.Connections()))
}

func TestAddConnectionRejectsNonLocalDestination(t *testing.T) {
	c := New(newTestDecomp(t), SerialPolicy{})
	err := c.AddConnection(core.Connection{
		Source: core.CellMember{GID: 0}, Destination: core.CellMember{GID: 99}, Delay: 1,
	})
	require.Error(t, err)
}

func TestMinDelayAllReduces(t *testing.T) {
	c := New(newTestDecomp(t), SerialPolicy{})
	require.NoError(t, c.AddConnection(core.Connection{
		Source: core.CellMember{GID: 0}, Destination: core.CellMember{GID: 1}, Delay: 3,
	}))
	require.NoError(t, c.AddConnection(core.Connection{
		Source: core.CellMember{GID: 0}, Destination: core.CellMember{GID: 2}, Delay: 1.5,
	}))
	c.Construct()

	d, err := c.MinDelay()
	require.NoError(t, err)
	require.Equal(t, 1.5, d)
}

func TestExchangeIsDeterministicAcrossCalls(t *testing.T) {
	c := New(newTestDecomp(t), SerialPolicy{})
	spikes := []core.Spike{
		{Source: core.CellMember{GID: 0}, Time: 1.0},
		{Source: core.CellMember{GID: 1}, Time: 2.0},
	}
	g1, err := c.Exchange(spikes)
	require.NoError(t, err)
	g2, err := c.Exchange(spikes)
	require.NoError(t, err)

	require.True(t, g1.PartitionValid())
	require.Equal(t, g1.Values, g2.Values)
	require.Equal(t, g1.Offsets, g2.Offsets)
	require.Equal(t, uint64(4), c.NumSpikes())
}

func TestMakeEventQueuesRoutesByDestinationGroup(t *testing.T) {
	c := New(newTestDecomp(t), SerialPolicy{})
	require.NoError(t, c.AddConnection(core.Connection{
		Source: core.CellMember{GID: 0}, Destination: core.CellMember{GID: 2, Index: 0},
		Weight: 0.5, Delay: 1.0,
	}))
	require.NoError(t, c.AddConnection(core.Connection{
		Source: core.CellMember{GID: 0}, Destination: core.CellMember{GID: 3, Index: 1},
		Weight: 0.25, Delay: 2.0,
	}))
	c.Construct()

	global := core.GatheredVector{
		Values:  []core.Spike{{Source: core.CellMember{GID: 0}, Time: 5.0}},
		Offsets: []int{0, 1},
	}
	queues, err := c.MakeEventQueues(global)
	require.NoError(t, err)
	require.Len(t, queues, 4)

	ev, ok := queues[2].PopIf(6.0)
	require.True(t, ok)
	require.Equal(t, core.CellMember{GID: 2, Index: 0}, ev.Target)
	require.Equal(t, 6.0, ev.Time)

	ev, ok = queues[3].PopIf(7.0)
	require.True(t, ok)
	require.Equal(t, core.CellMember{GID: 3, Index: 1}, ev.Target)
	require.Equal(t, 7.0, ev.Time)

	require.Equal(t, 0, queues[0].Len())
	require.Equal(t, 0, queues[1].Len())
}
