package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/inference-sim/queue-sim/sim/trace"
)

// ServerConfig describes one server of the roster.
type ServerConfig struct {
	Name    string        // display name (e.g. "able"); defaults to "server_<i>"
	Service VariateSource // service-duration source (required)
}

// InitialService puts a server in service at t=0, completing at CompletesAt.
// The occupying customer takes one of the first slots of the customer pool.
type InitialService struct {
	Server      int     // roster index
	CompletesAt float64 // completion time (>= 0)
}

// Config groups everything the simulator consumes at construction.
type Config struct {
	NumCustomers       int              // number of arrivals to seed (>= 0)
	Capacity           Capacity         // wait line capacity; Unbounded or >= 0
	Arrivals           VariateSource    // inter-arrival source (required when NumCustomers > 0)
	Servers            []ServerConfig   // server roster (at least one)
	InitialInService   []InitialService // servers already busy at t=0 (optional)
	FirstArrivalAtZero bool             // first arrival at t=0 instead of at the first draw
	Trace              trace.TraceConfig
}

// Validate checks that the configuration can build a simulator.
func (c *Config) Validate() error {
	if c.NumCustomers < 0 {
		return fmt.Errorf("number of customers must be >= 0, got %d", c.NumCustomers)
	}
	if c.NumCustomers > 0 && c.Arrivals == nil {
		return errors.New("arrival source is required when customers are seeded")
	}
	if c.Capacity < Unbounded {
		return fmt.Errorf("capacity must be >= 0 or unbounded, got %d", int(c.Capacity))
	}
	if len(c.Servers) == 0 {
		return errors.New("at least one server is required")
	}
	for i, s := range c.Servers {
		if s.Service == nil {
			return fmt.Errorf("server[%d]: service source is required", i)
		}
	}
	seen := make(map[int]bool, len(c.InitialInService))
	for i, in := range c.InitialInService {
		if in.Server < 0 || in.Server >= len(c.Servers) {
			return fmt.Errorf("initial_in_service[%d]: server index %d out of range [0, %d)", i, in.Server, len(c.Servers))
		}
		if seen[in.Server] {
			return fmt.Errorf("initial_in_service[%d]: server %d listed twice", i, in.Server)
		}
		seen[in.Server] = true
		if math.IsNaN(in.CompletesAt) || math.IsInf(in.CompletesAt, 0) || in.CompletesAt < 0 {
			return fmt.Errorf("initial_in_service[%d]: completion time must be a finite number >= 0, got %v", i, in.CompletesAt)
		}
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q", c.Trace.Level)
	}
	return nil
}

// ServerName returns the configured name of server i, or its default.
func (c *Config) ServerName(i int) string {
	if name := c.Servers[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("server_%d", i)
}
