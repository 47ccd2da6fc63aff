package core

import "testing"

func TestCellMemberOrder(t *testing.T) {
	a := CellMember{GID: 1, Index: 5}
	b := CellMember{GID: 1, Index: 6}
	c := CellMember{GID: 2, Index: 0}

	if !a.Less(b) {
		t.Fatalf("expected %v < %v", a, b)
	}
	if !b.Less(c) {
		t.Fatalf("expected %v < %v", b, c)
	}
	if a.Compare(a) != 0 {
		t.Fatalf("expected a.Compare(a) == 0")
	}
	if c.Compare(a) != 1 {
		t.Fatalf("expected c.Compare(a) == 1, got %d", c.Compare(a))
	}
}

func TestConnectionSortAndEqualRange(t *testing.T) {
	cs := []Connection{
		{Source: CellMember{GID: 2}, Destination: CellMember{GID: 9}, Delay: 1},
		{Source: CellMember{GID: 1}, Destination: CellMember{GID: 8}, Delay: 1},
		{Source: CellMember{GID: 1}, Destination: CellMember{GID: 7}, Delay: 1},
	}
	SortConnectionsBySource(cs)
	if !IsSortedBySource(cs) {
		t.Fatalf("expected connections sorted by source, got %+v", cs)
	}
	// ties on Source=1 must keep destination order (7 before 8)
	if cs[0].Destination.GID != 7 || cs[1].Destination.GID != 8 {
		t.Fatalf("expected stable tie-break by destination, got %+v", cs)
	}

	lo, hi := EqualRangeBySource(cs, CellMember{GID: 1})
	if hi-lo != 2 {
		t.Fatalf("expected 2 matches for source gid 1, got %d", hi-lo)
	}
	lo, hi = EqualRangeBySource(cs, CellMember{GID: 5})
	if lo != hi {
		t.Fatalf("expected empty range for absent source, got [%d,%d)", lo, hi)
	}
}

func TestMakeEvent(t *testing.T) {
	c := Connection{
		Source:      CellMember{GID: 1},
		Destination: CellMember{GID: 2, Index: 3},
		Weight:      0.5,
		Delay:       1.5,
	}
	s := Spike{Source: c.Source, Time: 2.0}
	ev := c.MakeEvent(s)
	if ev.Target != c.Destination || ev.Weight != 0.5 || ev.Time != 3.5 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestGatheredVectorPartitionValid(t *testing.T) {
	g := GatheredVector{
		Values:  make([]Spike, 5),
		Offsets: []int{0, 2, 2, 5},
	}
	if !g.PartitionValid() {
		t.Fatalf("expected valid partition")
	}
	if len(g.RankSlice(0)) != 2 || len(g.RankSlice(1)) != 0 || len(g.RankSlice(2)) != 3 {
		t.Fatalf("unexpected rank slices")
	}

	bad := GatheredVector{Values: make([]Spike, 5), Offsets: []int{0, 3, 2}}
	if bad.PartitionValid() {
		t.Fatalf("expected invalid partition for non-monotone offsets")
	}
}
