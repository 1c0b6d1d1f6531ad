package sim

import (
	"errors"
	"fmt"
)

// QueueingSystem holds the server roster and the shared wait line, and owns
// the admission and dispatch policy. It is mutated only by event handling,
// one event at a time.
type QueueingSystem struct {
	Servers []*Server
	WaitQ   *WaitQueue

	maxQueueLen int
}

// NewQueueingSystem creates a system with every server idle and an empty wait line.
func NewQueueingSystem(capacity Capacity, servers []*Server) (*QueueingSystem, error) {
	if len(servers) == 0 {
		return nil, errors.New("queueing system needs at least one server")
	}
	for i, s := range servers {
		if s == nil {
			return nil, fmt.Errorf("server[%d] is nil", i)
		}
		if s.Service == nil {
			return nil, fmt.Errorf("server[%d] (%s) has no service-time source", i, s.Name)
		}
	}
	if capacity < Unbounded {
		return nil, fmt.Errorf("invalid capacity %d", int(capacity))
	}
	return &QueueingSystem{
		Servers: servers,
		WaitQ:   NewWaitQueue(capacity),
	}, nil
}

// IdleServer returns the roster index of the lowest-index idle server,
// or NoServer when all servers are busy.
func (qs *QueueingSystem) IdleServer() int {
	for i, s := range qs.Servers {
		if !s.Busy() {
			return i
		}
	}
	return NoServer
}

// BusyServers returns the number of servers currently serving a customer.
func (qs *QueueingSystem) BusyServers() int {
	n := 0
	for _, s := range qs.Servers {
		if s.Busy() {
			n++
		}
	}
	return n
}

// MaxQueueLen returns the longest wait line observed so far.
func (qs *QueueingSystem) MaxQueueLen() int {
	return qs.maxQueueLen
}

// Serve assigns c to the idle server at idx starting at now, draws a service
// duration from that server's source and returns the completion event.
func (qs *QueueingSystem) Serve(idx int, now float64, c *Customer) *ServiceCompletionEvent {
	s := qs.Servers[idx]
	if s.Busy() {
		panic(fmt.Sprintf("Serve: server %d (%s) is already serving customer %d", idx, s.Name, s.current.ID))
	}
	s.current = c
	c.ServiceStart = now
	c.State = StateInService
	c.Server = idx
	return NewServiceCompletionEvent(now+s.Service.Next(), c, idx)
}

// Admit places c at the tail of the wait line at time now.
// Returns false, marking c balked, when the line is at capacity.
func (qs *QueueingSystem) Admit(now float64, c *Customer) bool {
	if !qs.WaitQ.Enqueue(c) {
		c.State = StateBalked
		return false
	}
	c.WaitStart = now
	c.State = StateWaiting
	c.Queued = true
	if l := qs.WaitQ.Len(); l > qs.maxQueueLen {
		qs.maxQueueLen = l
	}
	return true
}

// NextWaiting removes the oldest waiting customer and stamps its wait end.
// Returns nil when nobody is waiting.
func (qs *QueueingSystem) NextWaiting(now float64) *Customer {
	c := qs.WaitQ.Dequeue()
	if c == nil {
		return nil
	}
	c.WaitEnd = now
	return c
}

// Complete finishes the service of c on the server at idx at time now and
// frees the server for the next dispatch.
func (qs *QueueingSystem) Complete(idx int, now float64, c *Customer) {
	s := qs.Servers[idx]
	if s.current != c {
		panic(fmt.Sprintf("Complete: server %d (%s) is not serving customer %d", idx, s.Name, c.ID))
	}
	c.ServiceEnd = now
	c.State = StateCompleted
	s.Served++
	s.BusyTime += c.ServiceTime()
	s.current = nil
}
