// Package trace provides per-event trace recording for queueing simulations.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Outcome describes what handling an event did to the system.
type Outcome string

const (
	OutcomeServed     Outcome = "served"     // arrival dispatched straight to an idle server
	OutcomeQueued     Outcome = "queued"     // arrival admitted to the wait line
	OutcomeBalked     Outcome = "balked"     // arrival rejected, wait line full
	OutcomeDispatched Outcome = "dispatched" // completion; server reused for the head of the line
	OutcomeReleased   Outcome = "released"   // completion; server went idle
)

// EventRecord captures the system state right after one event was handled.
type EventRecord struct {
	Seq         int
	Time        float64
	Kind        string
	CustomerID  int
	Server      int // -1 when no server was involved
	Outcome     Outcome
	QueueLen    int
	BusyServers int
}
