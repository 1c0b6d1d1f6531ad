package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/queue-sim/sim/variate"
)

func draws(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()
	}
	return out
}

func TestPartitionedRNG_SameKey_SameStreams(t *testing.T) {
	a := NewPartitionedRNG(NewSimulationKey(42))
	b := NewPartitionedRNG(NewSimulationKey(42))

	assert.Equal(t, draws(a.ForSubsystem(SubsystemArrival), 5), draws(b.ForSubsystem(SubsystemArrival), 5))
	assert.Equal(t, draws(a.ForSubsystem(SubsystemServer(1)), 5), draws(b.ForSubsystem(SubsystemServer(1)), 5))
}

func TestPartitionedRNG_ArrivalStreamIsMasterSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7))
	assert.Equal(t, draws(rand.New(rand.NewSource(7)), 10), draws(rng.ForSubsystem(SubsystemArrival), 10))
	assert.Equal(t, SimulationKey(7), rng.Key())
}

func TestPartitionedRNG_ServerStreamsIndependentOfOtherDraws(t *testing.T) {
	// GIVEN one partition that draws heavily from arrivals and able first
	busy := NewPartitionedRNG(NewSimulationKey(42))
	draws(busy.ForSubsystem(SubsystemArrival), 100)
	draws(busy.ForSubsystem(SubsystemServer(0)), 37)

	// WHEN baker's stream is first used afterwards
	got := draws(busy.ForSubsystem(SubsystemServer(1)), 5)

	// THEN it matches a fresh partition's baker stream
	fresh := NewPartitionedRNG(NewSimulationKey(42))
	assert.Equal(t, draws(fresh.ForSubsystem(SubsystemServer(1)), 5), got)
}

func TestPartitionedRNG_StreamsDiffer(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	arrival := draws(NewPartitionedRNG(NewSimulationKey(42)).ForSubsystem(SubsystemArrival), 3)
	able := draws(rng.ForSubsystem(SubsystemServer(0)), 3)
	baker := draws(rng.ForSubsystem(SubsystemServer(1)), 3)

	assert.NotEqual(t, arrival, able)
	assert.NotEqual(t, able, baker)
}

func TestPartitionedRNG_ForSubsystem_ReusesGenerator(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	assert.Empty(t, rng.streams)
	assert.Same(t, rng.ForSubsystem(SubsystemServer(3)), rng.ForSubsystem(SubsystemServer(3)))
	assert.Len(t, rng.streams, 1)
}

func TestSubsystemServer_NamesByIndex(t *testing.T) {
	assert.Equal(t, "server_0", SubsystemServer(0))
	assert.Equal(t, "server_12", SubsystemServer(12))
	assert.NotEqual(t, fnv1a64(SubsystemServer(1)), fnv1a64(SubsystemServer(10)))
}

// Adding a third server must not move any arrival: the arrival stream is
// partitioned away from the service streams.
func TestSimulator_AddingServer_KeepsArrivalTimes(t *testing.T) {
	arrivalsFor := func(servers int) []float64 {
		rng := NewPartitionedRNG(NewSimulationKey(9))
		table := []variate.Outcome{{Value: 1, Prob: 0.5}, {Value: 3, Prob: 0.5}}
		arrivals, err := variate.NewEmpirical(table, rng.ForSubsystem(SubsystemArrival))
		require.NoError(t, err)
		cfg := Config{NumCustomers: 20, Capacity: Unbounded, Arrivals: arrivals}
		for i := 0; i < servers; i++ {
			svc, err := variate.NewEmpirical(table, rng.ForSubsystem(SubsystemServer(i)))
			require.NoError(t, err)
			cfg.Servers = append(cfg.Servers, ServerConfig{Service: svc})
		}
		s := mustRun(t, cfg)
		out := make([]float64, len(s.Customers))
		for i, c := range s.Customers {
			out[i] = c.ArrivalTime
		}
		return out
	}

	assert.Equal(t, arrivalsFor(2), arrivalsFor(3))
}
