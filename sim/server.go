package sim

import "fmt"

// VariateSource produces an infinite, lazily generated sequence of durations.
// Each call to Next advances the underlying random stream by one draw.
// Values are assumed non-negative; implementations reject distributions that
// could produce anything else at construction time.
type VariateSource interface {
	Next() float64
}

// Server is one service resource. It is busy while it holds an assigned,
// not-yet-completed customer, and draws each service duration from its own
// VariateSource.
type Server struct {
	Name    string
	Service VariateSource

	current *Customer

	Served   int     // customers whose service completed on this server
	BusyTime float64 // sum of completed service durations
}

// NewServer creates an idle server.
func NewServer(name string, service VariateSource) *Server {
	return &Server{Name: name, Service: service}
}

// Busy reports whether the server has an assigned customer in service.
func (s *Server) Busy() bool {
	return s.current != nil
}

// Current returns the customer in service, or nil when idle.
func (s *Server) Current() *Customer {
	return s.current
}

func (s *Server) String() string {
	state := "idle"
	if s.Busy() {
		state = fmt.Sprintf("serving customer %d", s.current.ID)
	}
	return fmt.Sprintf("Server: (Name: %s, %s, Served: %d)", s.Name, state, s.Served)
}
