package experiment

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/trace"
	"github.com/inference-sim/queue-sim/sim/variate"
)

// NewSource builds the VariateSource described by d, drawing from rng.
func NewSource(d DistSpec, rng *rand.Rand) (sim.VariateSource, error) {
	switch d.Type {
	case "empirical":
		return variate.NewEmpirical(d.Table, rng)
	case "constant":
		return variate.NewConstant(d.Value)
	case "sequence":
		return variate.NewSequence(d.Values...)
	case "exponential":
		return variate.NewExponential(d.Mean, rng)
	default:
		return nil, fmt.Errorf("unknown distribution type %q", d.Type)
	}
}

// Build validates the spec and produces a simulator configuration whose
// sources are seeded from the spec's seed, one RNG partition per stream.
func (s *ExperimentSpec) Build() (sim.Config, error) {
	if err := s.Validate(); err != nil {
		return sim.Config{}, err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(s.Seed))

	cfg := sim.Config{
		NumCustomers:       s.Customers,
		Capacity:           s.SimCapacity(),
		FirstArrivalAtZero: s.FirstArrivalAtZero,
		Trace:              trace.TraceConfig{Level: trace.TraceLevel(s.Trace)},
	}
	if s.Customers > 0 {
		arrivals, err := NewSource(s.Arrival, rng.ForSubsystem(sim.SubsystemArrival))
		if err != nil {
			return sim.Config{}, fmt.Errorf("arrival: %w", err)
		}
		cfg.Arrivals = arrivals
	}
	for i, srv := range s.Servers {
		service, err := NewSource(srv.Service, rng.ForSubsystem(sim.SubsystemServer(i)))
		if err != nil {
			return sim.Config{}, fmt.Errorf("servers[%d].service: %w", i, err)
		}
		cfg.Servers = append(cfg.Servers, sim.ServerConfig{Name: srv.Name, Service: service})
	}
	for _, in := range s.InitialInService {
		cfg.InitialInService = append(cfg.InitialInService, sim.InitialService{Server: in.Server, CompletesAt: in.CompletesAt})
	}

	if s.Customers == 0 {
		logrus.Warnf("Experiment %q has no arriving customers; only initial in-service completions will run", s.Name)
	}
	logrus.Debugf("Built experiment %q: seed=%d customers=%d servers=%d capacity=%s",
		s.Name, s.Seed, s.Customers, len(s.Servers), cfg.Capacity)
	return cfg, nil
}
