// Package recorder writes the per-customer results of a finished simulation
// run to a tab-aligned table, a CSV file, or a SQLite database.
package recorder

import (
	"strconv"

	"github.com/rs/xid"

	"github.com/inference-sim/queue-sim/sim"
)

// Recorder persists finished runs.
type Recorder interface {
	// Record writes one run.
	Record(run *Run) error

	// Close flushes buffered output and releases the backend.
	Close() error
}

// Run is a finished simulation captured for recording.
type Run struct {
	ID        string
	Name      string
	Seed      int64
	Capacity  sim.Capacity
	Customers []*sim.Customer
	Servers   []*sim.Server
	Metrics   *sim.Metrics
}

// NewRun captures the results of s under a fresh run ID.
// s must have completed Run.
func NewRun(name string, seed int64, s *sim.Simulator) *Run {
	return &Run{
		ID:        xid.New().String(),
		Name:      name,
		Seed:      seed,
		Capacity:  s.System.WaitQ.Capacity(),
		Customers: s.Customers,
		Servers:   s.System.Servers,
		Metrics:   s.Metrics(),
	}
}

// Columns is the per-customer column layout shared by every backend.
var Columns = []string{
	"id", "server", "arrival_time", "wait_start", "wait_end", "wait_time",
	"service_start", "service_end", "service_time", "total_time", "balked",
}

// serverName resolves the server column; empty when the customer was never served.
func serverName(c *sim.Customer, servers []*sim.Server) string {
	if c.Server == sim.NoServer || c.Server >= len(servers) {
		return ""
	}
	return servers[c.Server].Name
}

// customerRow formats c in Columns order. Times that never happened are blank.
func customerRow(c *sim.Customer, servers []*sim.Server) []string {
	row := []string{strconv.Itoa(c.ID), serverName(c, servers), formatTime(c.ArrivalTime)}
	if c.Queued {
		row = append(row, formatTime(c.WaitStart), formatTime(c.WaitEnd))
	} else {
		row = append(row, "", "")
	}
	if c.Completed() {
		row = append(row,
			formatTime(c.WaitTime()),
			formatTime(c.ServiceStart),
			formatTime(c.ServiceEnd),
			formatTime(c.ServiceTime()),
			formatTime(c.TotalTime()))
	} else {
		row = append(row, "", "", "", "", "")
	}
	return append(row, strconv.FormatBool(c.Balked()))
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
