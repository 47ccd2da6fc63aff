// Package eventqueue implements the per-cell-group priority queue of
// pending synaptic events, ordered by delivery time with a deterministic
// tie-break. No third-party priority-queue library appears anywhere in the
// retrieved corpus, so this is built on the standard library's
// container/heap, the idiomatic tool for exactly this job.
package eventqueue

import (
	"container/heap"

	"github.com/nestmc/nestmc/core"
)

// entry wraps a PostedEvent with an insertion sequence number, used only to
// break ties when two events share both delivery time and target — the
// spec fixes that residual tie to connection-table (insertion) order.
type entry struct {
	event core.PostedEvent
	seq   uint64
}

// Queue is a binary min-heap of pending events, keyed first by delivery
// time, then by (target gid, target index) to ensure deterministic replay,
// then by insertion order for true ties.
type Queue struct {
	h     entryHeap
	nextSeq uint64
}

// New returns an empty event queue.
func New() *Queue {
	return &Queue{}
}

// NewFromSlice builds a queue from events already collected (e.g. by a
// communicator's make_event_queues pass), preserving connection-table order
// as the tie-break for simultaneous deliveries to the same target.
func NewFromSlice(events []core.PostedEvent) *Queue {
	q := New()
	q.PushAll(events)
	return q
}

// Push adds one event to the queue.
func (q *Queue) Push(ev core.PostedEvent) {
	heap.Push(&q.h, entry{event: ev, seq: q.nextSeq})
	q.nextSeq++
}

// PushAll adds every event in evs to the queue, in order.
func (q *Queue) PushAll(evs []core.PostedEvent) {
	for _, ev := range evs {
		q.Push(ev)
	}
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return q.h.Len() }

// Peek returns the minimum event without removing it.
func (q *Queue) Peek() (core.PostedEvent, bool) {
	if q.h.Len() == 0 {
		return core.PostedEvent{}, false
	}
	return q.h[0].event, true
}

// PopIf removes and returns the minimum event only if its delivery time is
// at most t; otherwise it leaves the queue untouched and returns false.
func (q *Queue) PopIf(t float64) (core.PostedEvent, bool) {
	if q.h.Len() == 0 || q.h[0].event.Time > t {
		return core.PostedEvent{}, false
	}
	e := heap.Pop(&q.h).(entry)
	return e.event, true
}

type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	a, b := h[i].event, h[j].event
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if a.Target != b.Target {
		return a.Target.Less(b.Target)
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
