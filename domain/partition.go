// Package domain maps global cell ids to the local cell group that owns
// them on this rank, the way Arbor's util::partition_range maps a sorted
// gid space to contiguous group ranges.
package domain

import (
	"fmt"
	"sort"

	"github.com/nestmc/nestmc/core"
)

// Decomposition partitions a contiguous range of gids owned by this rank
// into NumGroups contiguous, non-overlapping local groups. Bounds has
// length NumGroups+1; group i owns [Bounds[i], Bounds[i+1]).
type Decomposition struct {
	Bounds []core.CellGID
}

// NewDecomposition validates that bounds is strictly non-decreasing and
// returns a Decomposition over it.
func NewDecomposition(bounds []core.CellGID) (*Decomposition, error) {
	if len(bounds) < 2 {
		return nil, fmt.Errorf("domain: need at least one group boundary pair")
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] < bounds[i-1] {
			return nil, fmt.Errorf("domain: bounds must be non-decreasing")
		}
	}
	return &Decomposition{Bounds: bounds}, nil
}

// EvenSplit builds a Decomposition for a rank owning gids
// [rankBegin, rankBegin+total), split into contiguous groups of at most
// groupSize cells each (the last group may be smaller).
func EvenSplit(rankBegin, total core.CellGID, groupSize int) (*Decomposition, error) {
	if groupSize < 1 {
		return nil, fmt.Errorf("domain: group_size must be >= 1")
	}
	bounds := []core.CellGID{rankBegin}
	for remaining := total; remaining > 0; {
		step := core.CellGID(groupSize)
		if step > remaining {
			step = remaining
		}
		bounds = append(bounds, bounds[len(bounds)-1]+step)
		remaining -= step
	}
	return NewDecomposition(bounds)
}

// NumGroups returns the number of local cell groups.
func (d *Decomposition) NumGroups() int { return len(d.Bounds) - 1 }

// Range returns the half-open gid range owned by local group i.
func (d *Decomposition) Range(i int) (begin, end core.CellGID) {
	return d.Bounds[i], d.Bounds[i+1]
}

// IsLocal reports whether gid falls within this rank's owned range.
func (d *Decomposition) IsLocal(gid core.CellGID) bool {
	return gid >= d.Bounds[0] && gid < d.Bounds[len(d.Bounds)-1]
}

// GroupIndex returns the local group index owning gid, or an error if gid
// is not local to this rank.
func (d *Decomposition) GroupIndex(gid core.CellGID) (int, error) {
	if !d.IsLocal(gid) {
		return 0, fmt.Errorf("domain: gid %d is not local to this rank", gid)
	}
	// Bounds[1:] holds each group's exclusive upper bound; the first one
	// strictly greater than gid identifies its owning group.
	i := sort.Search(len(d.Bounds)-1, func(i int) bool {
		return d.Bounds[i+1] > gid
	})
	return i, nil
}
