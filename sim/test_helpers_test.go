package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/queue-sim/sim/variate"
)

// seq returns a source replaying values cyclically.
func seq(t *testing.T, values ...float64) VariateSource {
	t.Helper()
	s, err := variate.NewSequence(values...)
	require.NoError(t, err)
	return s
}

// mustSimulator builds a simulator, failing the test on a config error.
func mustSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	return s
}

// mustRun builds and runs a simulator.
func mustRun(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s := mustSimulator(t, cfg)
	require.NoError(t, s.Run())
	return s
}

// assertConservation checks that every arrived customer either balked or
// completed service with service_end >= service_start >= arrival_time.
func assertConservation(t *testing.T, customers []*Customer) {
	t.Helper()
	for _, c := range customers {
		if c.State == StatePending {
			continue
		}
		if c.Balked() {
			if c.Server != NoServer || c.ServiceStart != 0 || c.ServiceEnd != 0 {
				t.Errorf("balked customer %d has service data: %+v", c.ID, c)
			}
			continue
		}
		if !c.Completed() {
			t.Errorf("customer %d neither balked nor completed: state=%s", c.ID, c.State)
			continue
		}
		if c.ServiceStart < c.ArrivalTime || c.ServiceEnd < c.ServiceStart {
			t.Errorf("customer %d timestamps out of order: arrival=%v start=%v end=%v",
				c.ID, c.ArrivalTime, c.ServiceStart, c.ServiceEnd)
		}
	}
}
