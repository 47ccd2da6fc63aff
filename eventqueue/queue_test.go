package eventqueue

import (
	"testing"

	"github.com/nestmc/nestmc/core"
)

func TestPopIfOrdersByTimeThenTarget(t *testing.T) {
	q := New()
	q.Push(core.PostedEvent{Target: core.CellMember{GID: 2}, Time: 1.0})
	q.Push(core.PostedEvent{Target: core.CellMember{GID: 1}, Time: 1.0})
	q.Push(core.PostedEvent{Target: core.CellMember{GID: 1}, Time: 0.5})

	ev, ok := q.PopIf(0.0)
	if ok {
		t.Fatalf("expected no event deliverable at t=0, got %v", ev)
	}

	ev, ok = q.PopIf(0.5)
	if !ok || ev.Target.GID != 1 || ev.Time != 0.5 {
		t.Fatalf("unexpected first pop: %v, %v", ev, ok)
	}

	ev, ok = q.PopIf(10)
	if !ok || ev.Target.GID != 1 || ev.Time != 1.0 {
		t.Fatalf("expected tie broken by target gid, got %v", ev)
	}

	ev, ok = q.PopIf(10)
	if !ok || ev.Target.GID != 2 {
		t.Fatalf("expected remaining event with gid 2, got %v", ev)
	}

	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got len %d", q.Len())
	}
}

func TestInsertionOrderTiesBreak(t *testing.T) {
	q := New()
	target := core.CellMember{GID: 3, Index: 0}
	q.Push(core.PostedEvent{Target: target, Time: 1.0, Weight: 1})
	q.Push(core.PostedEvent{Target: target, Time: 1.0, Weight: 2})

	first, _ := q.PopIf(1.0)
	second, _ := q.PopIf(1.0)
	if first.Weight != 1 || second.Weight != 2 {
		t.Fatalf("expected insertion order preserved for exact ties, got %v then %v", first, second)
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	q := New()
	q.Push(core.PostedEvent{Time: 5})
	if _, ok := q.Peek(); !ok {
		t.Fatalf("expected peek to find an event")
	}
	if q.Len() != 1 {
		t.Fatalf("peek must not remove the event")
	}
}
