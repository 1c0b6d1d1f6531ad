package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the master seed of a run. Equal keys and equal
// experiments give identical customer records.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemArrival names the inter-arrival stream. It draws from the master
// seed itself, so a one-server and a two-server experiment with the same seed
// see the same customers arrive at the same times.
const SubsystemArrival = "arrival"

// SubsystemServer names the service stream of the server at roster index id.
func SubsystemServer(id int) string {
	return fmt.Sprintf("server_%d", id)
}

// PartitionedRNG hands every stream of an experiment its own generator.
// Able's service draws never depend on how many customers Baker served, and
// adding a server leaves the arrival stream and the other servers untouched,
// which keeps what-if comparisons between rosters fair.
//
// Seeds: the arrival stream uses the key; server streams use key XOR
// fnv1a64(subsystem name). Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates an empty partition set for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the generator for name, creating it on first use.
// Repeated calls with one name share a single generator.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemArrival {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

// Key returns the master seed.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
