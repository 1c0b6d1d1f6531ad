// Package experiment loads YAML experiment specifications and turns them into
// a seeded sim.Config.
package experiment

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/trace"
	"github.com/inference-sim/queue-sim/sim/variate"
)

// ExperimentSpec is the top-level experiment configuration.
// Loaded from YAML via LoadExperimentSpec(path).
type ExperimentSpec struct {
	Version            string               `yaml:"version"`
	Name               string               `yaml:"name,omitempty"`
	Description        string               `yaml:"description,omitempty"`
	Seed               int64                `yaml:"seed"`
	Customers          int                  `yaml:"customers"`
	FirstArrivalAtZero bool                 `yaml:"first_arrival_at_zero,omitempty"`
	Capacity           *Capacity            `yaml:"capacity,omitempty"` // nil = unbounded
	Arrival            DistSpec             `yaml:"arrival"`
	Servers            []ServerSpec         `yaml:"servers"`
	InitialInService   []InitialServiceSpec `yaml:"initial_in_service,omitempty"`
	Trace              string               `yaml:"trace,omitempty"`
}

// ServerSpec defines one server of the roster.
type ServerSpec struct {
	Name    string   `yaml:"name"`
	Service DistSpec `yaml:"service"`
}

// InitialServiceSpec marks a server busy at t=0 until CompletesAt.
type InitialServiceSpec struct {
	Server      int     `yaml:"server"`
	CompletesAt float64 `yaml:"completes_at"`
}

// DistSpec parameterizes a duration distribution.
type DistSpec struct {
	Type   string            `yaml:"type"`
	Table  []variate.Outcome `yaml:"table,omitempty"`  // empirical
	Value  float64           `yaml:"value,omitempty"`  // constant
	Values []float64         `yaml:"values,omitempty"` // sequence
	Mean   float64           `yaml:"mean,omitempty"`   // exponential
}

// Capacity is a wait line capacity that decodes from a non-negative integer
// or the string "unbounded".
type Capacity sim.Capacity

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Capacity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: capacity must be a scalar", node.Line)
	}
	parsed, err := sim.ParseCapacity(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = Capacity(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Capacity) MarshalYAML() (any, error) {
	if sim.Capacity(c).IsUnbounded() {
		return "unbounded", nil
	}
	return int(c), nil
}

// SimCapacity returns the configured capacity, Unbounded when unset.
func (s *ExperimentSpec) SimCapacity() sim.Capacity {
	if s.Capacity == nil {
		return sim.Unbounded
	}
	return sim.Capacity(*s.Capacity)
}

// SetCapacity overrides the configured capacity.
func (s *ExperimentSpec) SetCapacity(c sim.Capacity) {
	v := Capacity(c)
	s.Capacity = &v
}

// Valid value registries.
var (
	validDistTypes = map[string]bool{
		"empirical": true, "constant": true, "sequence": true, "exponential": true,
	}
	validVersions = map[string]bool{
		"": true, "1": true,
	}
)

// LoadExperimentSpec reads and parses a YAML experiment specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadExperimentSpec(path string) (*ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment spec: %w", err)
	}
	return ParseExperimentSpec(data)
}

// ParseExperimentSpec decodes a YAML experiment specification.
func ParseExperimentSpec(data []byte) (*ExperimentSpec, error) {
	var spec ExperimentSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing experiment spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
// Distribution tables are checked again, numerically, when sources are built.
func (s *ExperimentSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unsupported version %q; valid: 1", s.Version)
	}
	if s.Customers < 0 {
		return fmt.Errorf("customers must be >= 0, got %d", s.Customers)
	}
	if s.Customers > 0 {
		if err := validateDist("arrival", &s.Arrival); err != nil {
			return err
		}
	}
	if len(s.Servers) == 0 {
		return fmt.Errorf("at least one server required")
	}
	for i := range s.Servers {
		if err := validateDist(fmt.Sprintf("servers[%d].service", i), &s.Servers[i].Service); err != nil {
			return err
		}
	}
	for i, in := range s.InitialInService {
		if in.Server < 0 || in.Server >= len(s.Servers) {
			return fmt.Errorf("initial_in_service[%d]: server %d out of range [0, %d)", i, in.Server, len(s.Servers))
		}
		if math.IsNaN(in.CompletesAt) || math.IsInf(in.CompletesAt, 0) || in.CompletesAt < 0 {
			return fmt.Errorf("initial_in_service[%d]: completes_at must be a finite number >= 0, got %v", i, in.CompletesAt)
		}
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, events", s.Trace)
	}
	return nil
}

func validateDist(field string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: %s", field, d.Type, strings.Join(distTypeNames(), ", "))
	}
	switch d.Type {
	case "empirical":
		if len(d.Table) == 0 {
			return fmt.Errorf("%s: empirical distribution requires a non-empty table", field)
		}
	case "sequence":
		if len(d.Values) == 0 {
			return fmt.Errorf("%s: sequence distribution requires values", field)
		}
	case "exponential":
		if d.Mean <= 0 {
			return fmt.Errorf("%s: exponential mean must be positive, got %f", field, d.Mean)
		}
	}
	return nil
}

func distTypeNames() []string {
	return []string{"empirical", "constant", "sequence", "exponential"}
}
