// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/queue-sim/sim/trace"
)

// ErrAlreadyRun is returned when Run is called on a simulator that already ran.
var ErrAlreadyRun = errors.New("simulation already ran")

// Simulator is the core object that holds simulation time, system state, and the event loop.
type Simulator struct {
	Clock float64
	// Events holds every pending arrival and service completion
	Events *FutureEventList
	// System is the server roster and wait line, mutated only by event handling
	System *QueueingSystem
	// Customers is the pre-allocated pool: initial in-service customers first,
	// then one customer per seeded arrival
	Customers []*Customer
	// Trace is nil unless event tracing is enabled
	Trace      *trace.SimulationTrace
	EventCount int

	ran bool
}

// NewSimulator builds the queueing system, pre-allocates the customer pool and
// seeds the future event list with initial completions and the arrival stream.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	servers := make([]*Server, len(cfg.Servers))
	for i, sc := range cfg.Servers {
		servers[i] = NewServer(cfg.ServerName(i), sc.Service)
	}
	system, err := NewQueueingSystem(cfg.Capacity, servers)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		Events:    NewFutureEventList(),
		System:    system,
		Customers: NewCustomers(len(cfg.InitialInService) + cfg.NumCustomers),
	}
	if cfg.Trace.Enabled() {
		s.Trace = trace.NewSimulationTrace(cfg.Trace)
	}

	for i, in := range cfg.InitialInService {
		s.Schedule(s.occupy(in, s.Customers[i]))
	}
	s.seedArrivals(cfg.Arrivals, s.Customers[len(cfg.InitialInService):], cfg.FirstArrivalAtZero)
	return s, nil
}

// occupy puts c in service on a server from t=0 without drawing a duration.
func (s *Simulator) occupy(in InitialService, c *Customer) Event {
	srv := s.System.Servers[in.Server]
	srv.current = c
	c.State = StateInService
	c.Server = in.Server
	c.Initial = true
	return NewServiceCompletionEvent(in.CompletesAt, c, in.Server)
}

// seedArrivals pushes one ArrivalEvent per customer, spaced by successive
// draws from the arrival source.
func (s *Simulator) seedArrivals(arrivals VariateSource, customers []*Customer, firstAtZero bool) {
	t := 0.0
	for i, c := range customers {
		if i > 0 || !firstAtZero {
			t += arrivals.Next()
		}
		s.Schedule(NewArrivalEvent(t, c))
	}
}

// Schedule pushes an event into the simulator's future event list.
func (s *Simulator) Schedule(ev Event) {
	s.Events.Push(ev)
}

// Run pops events in time order and handles each one until the list is empty.
func (s *Simulator) Run() error {
	if s.ran {
		return ErrAlreadyRun
	}
	s.ran = true

	logrus.Infof("Starting simulation: %d customers, %d servers, capacity=%s, %d events seeded",
		len(s.Customers), len(s.System.Servers), s.System.WaitQ.Capacity(), s.Events.Len())

	for !s.Events.IsEmpty() {
		ev, err := s.Events.Pop()
		if err != nil {
			return fmt.Errorf("next event: %w", err)
		}
		// advance the clock
		s.Clock = ev.Timestamp()
		logrus.Tracef("[t=%10.2f] Executing %T", s.Clock, ev)

		next := ev.Handle(s.System)
		s.EventCount++
		s.record(ev, next)
		if next != nil {
			s.Schedule(next)
		}
	}

	logrus.Infof("[t=%.2f] Simulation ended after %d events", s.Clock, s.EventCount)
	return nil
}

func (s *Simulator) record(ev, next Event) {
	if s.Trace == nil {
		return
	}
	r := trace.EventRecord{
		Seq:         s.EventCount,
		Time:        ev.Timestamp(),
		Kind:        string(ev.Kind()),
		CustomerID:  ev.Customer().ID,
		Server:      NoServer,
		Outcome:     outcomeOf(ev, next),
		QueueLen:    s.System.WaitQ.Len(),
		BusyServers: s.System.BusyServers(),
	}
	switch e := ev.(type) {
	case *ArrivalEvent:
		r.Server = e.Customer().Server
	case *ServiceCompletionEvent:
		r.Server = e.Server
	}
	s.Trace.Record(r)
}

// outcomeOf classifies a handled event by the state it left behind.
func outcomeOf(ev, next Event) trace.Outcome {
	switch ev.(type) {
	case *ArrivalEvent:
		switch ev.Customer().State {
		case StateInService:
			return trace.OutcomeServed
		case StateWaiting:
			return trace.OutcomeQueued
		default:
			return trace.OutcomeBalked
		}
	case *ServiceCompletionEvent:
		if next != nil {
			return trace.OutcomeDispatched
		}
		return trace.OutcomeReleased
	}
	panic(fmt.Sprintf("unknown event type %T", ev))
}

// Metrics computes summary statistics of the finished run.
func (s *Simulator) Metrics() *Metrics {
	return ComputeMetrics(s.Customers, s.System.Servers, s.Clock)
}
