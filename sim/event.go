package sim

import "github.com/sirupsen/logrus"

// EventKind names an event variant.
type EventKind string

const (
	KindArrival           EventKind = "arrival"
	KindServiceCompletion EventKind = "service_completion"
)

// Event defines the interface for all simulation events.
// Each event has a simulated Timestamp, the Customer it concerns, and a Handle
// method that mutates the QueueingSystem and may return a follow-up event
// (nil when there is none). The set of variants is closed: ArrivalEvent and
// ServiceCompletionEvent.
type Event interface {
	Timestamp() float64
	Kind() EventKind
	Customer() *Customer
	Handle(*QueueingSystem) Event
	isEvent()
}

type baseEvent struct {
	time     float64
	customer *Customer
}

// Timestamp returns the scheduled simulated time of the event.
func (e *baseEvent) Timestamp() float64 {
	return e.time
}

// Customer returns the customer the event concerns.
func (e *baseEvent) Customer() *Customer {
	return e.customer
}

func (e *baseEvent) isEvent() {}

// ArrivalEvent represents a customer entering the system.
type ArrivalEvent struct {
	baseEvent
}

// NewArrivalEvent creates an arrival of c at time t.
func NewArrivalEvent(t float64, c *Customer) *ArrivalEvent {
	return &ArrivalEvent{baseEvent{time: t, customer: c}}
}

// Kind returns KindArrival.
func (e *ArrivalEvent) Kind() EventKind {
	return KindArrival
}

// Handle dispatches the customer to the lowest-index idle server, or admits
// it to the wait line, or marks it balked when the line is full.
func (e *ArrivalEvent) Handle(qs *QueueingSystem) Event {
	c := e.customer
	c.ArrivalTime = e.time
	logrus.Debugf("<< Arrival: customer %d at t=%.2f", c.ID, e.time)

	if idx := qs.IdleServer(); idx != NoServer {
		return qs.Serve(idx, e.time, c)
	}
	if !qs.Admit(e.time, c) {
		logrus.Debugf("   customer %d balked, wait line full (%d)", c.ID, qs.WaitQ.Len())
	}
	return nil
}

// ServiceCompletionEvent represents a server finishing with a customer.
type ServiceCompletionEvent struct {
	baseEvent
	Server int // roster index of the server being freed
}

// NewServiceCompletionEvent creates the completion of c's service on the server at idx.
func NewServiceCompletionEvent(t float64, c *Customer, idx int) *ServiceCompletionEvent {
	return &ServiceCompletionEvent{baseEvent: baseEvent{time: t, customer: c}, Server: idx}
}

// Kind returns KindServiceCompletion.
func (e *ServiceCompletionEvent) Kind() EventKind {
	return KindServiceCompletion
}

// Handle stamps the finished customer and reuses the server for the oldest
// waiting customer, if any; otherwise the server goes idle.
func (e *ServiceCompletionEvent) Handle(qs *QueueingSystem) Event {
	logrus.Debugf("<< ServiceCompletion: customer %d on server %d at t=%.2f", e.customer.ID, e.Server, e.time)
	qs.Complete(e.Server, e.time, e.customer)

	next := qs.NextWaiting(e.time)
	if next == nil {
		return nil
	}
	return qs.Serve(e.Server, e.time, next)
}
