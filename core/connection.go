package core

import "sort"

// Connection is a directed synaptic link from a spike source to a synapse,
// carrying a weight and a propagation delay. Connections are keyed by
// Source for equal-range lookup once a connection table has been sorted.
type Connection struct {
	Source      CellMember
	Destination CellMember
	Weight      float64
	Delay       float64
}

// MakeEvent produces the posted event that delivering spike s along c
// generates at c's destination.
func (c Connection) MakeEvent(s Spike) PostedEvent {
	return PostedEvent{
		Target: c.Destination,
		Time:   s.Time + c.Delay,
		Weight: c.Weight,
	}
}

// SortConnectionsBySource sorts cs by Source, stably breaking ties by
// Destination so that connections with equal source and equal weight keep a
// deterministic relative order across runs.
func SortConnectionsBySource(cs []Connection) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Source != cs[j].Source {
			return cs[i].Source.Less(cs[j].Source)
		}
		return cs[i].Destination.Less(cs[j].Destination)
	})
}

// EqualRangeBySource returns the half-open index range [lo, hi) of cs whose
// Source equals src. cs must already be sorted by Source.
func EqualRangeBySource(cs []Connection, src CellMember) (lo, hi int) {
	lo = sort.Search(len(cs), func(i int) bool {
		return !cs[i].Source.Less(src)
	})
	hi = sort.Search(len(cs), func(i int) bool {
		return src.Less(cs[i].Source)
	})
	return lo, hi
}

// IsSortedBySource reports whether cs is sorted by Source, as required after
// Connection.Construct.
func IsSortedBySource(cs []Connection) bool {
	for i := 1; i < len(cs); i++ {
		if cs[i].Source.Less(cs[i-1].Source) {
			return false
		}
	}
	return true
}
