package sim

import (
	"container/heap"
	"errors"
)

// ErrEmptyEventList is returned by Pop on an empty FutureEventList.
var ErrEmptyEventList = errors.New("future event list is empty")

// eventEntry wraps an Event with a sequence ID for deterministic FIFO
// tie-breaking when timestamps are equal.
type eventEntry struct {
	event Event
	seqID uint64
}

// eventHeap is a min-heap ordered by (Timestamp, seqID).
// Implements heap.Interface.
type eventHeap []eventEntry

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].event.Timestamp() != h[j].event.Timestamp() {
		return h[i].event.Timestamp() < h[j].event.Timestamp()
	}
	return h[i].seqID < h[j].seqID
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(eventEntry))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = eventEntry{}
	*h = old[:n-1]
	return item
}

// FutureEventList is the time-ordered priority queue of pending events.
// Events at the same timestamp pop in the order they were pushed.
// Not thread-safe: it is owned by a single simulation driver.
type FutureEventList struct {
	events  eventHeap
	nextSeq uint64
	pending map[Event]struct{}
}

// NewFutureEventList creates an empty event list.
func NewFutureEventList() *FutureEventList {
	l := &FutureEventList{
		events:  make(eventHeap, 0),
		pending: make(map[Event]struct{}),
	}
	heap.Init(&l.events)
	return l
}

// Push schedules ev. Pushing nil or an event that is already pending panics.
func (l *FutureEventList) Push(ev Event) {
	if ev == nil {
		panic("FutureEventList.Push: event must not be nil")
	}
	if _, dup := l.pending[ev]; dup {
		panic("FutureEventList.Push: event is already scheduled")
	}
	l.pending[ev] = struct{}{}
	heap.Push(&l.events, eventEntry{event: ev, seqID: l.nextSeq})
	l.nextSeq++
}

// Pop removes and returns the earliest event.
func (l *FutureEventList) Pop() (Event, error) {
	if l.events.Len() == 0 {
		return nil, ErrEmptyEventList
	}
	ev := heap.Pop(&l.events).(eventEntry).event
	delete(l.pending, ev)
	return ev, nil
}

// Peek returns the earliest event without removing it, or nil when empty.
func (l *FutureEventList) Peek() Event {
	if l.events.Len() == 0 {
		return nil
	}
	return l.events[0].event
}

// Len returns the number of pending events.
func (l *FutureEventList) Len() int {
	return l.events.Len()
}

// IsEmpty reports whether no events are pending.
func (l *FutureEventList) IsEmpty() bool {
	return l.events.Len() == 0
}
