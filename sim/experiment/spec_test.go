package experiment

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/variate"
)

const minimalSpec = `
version: "1"
seed: 7
customers: 5
capacity: 2
arrival:
  type: constant
  value: 1
servers:
  - name: solo
    service:
      type: sequence
      values: [2, 3]
`

func TestLoadExperimentSpec_ValidYAML_LoadsCorrectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalSpec), 0644))

	spec, err := LoadExperimentSpec(path)
	require.NoError(t, err)

	assert.Equal(t, "1", spec.Version)
	assert.Equal(t, int64(7), spec.Seed)
	assert.Equal(t, 5, spec.Customers)
	assert.Equal(t, sim.Capacity(2), spec.SimCapacity())
	assert.Equal(t, "constant", spec.Arrival.Type)
	require.Len(t, spec.Servers, 1)
	assert.Equal(t, "solo", spec.Servers[0].Name)
	assert.Equal(t, []float64{2, 3}, spec.Servers[0].Service.Values)
	assert.NoError(t, spec.Validate())
}

func TestLoadExperimentSpec_MissingFile(t *testing.T) {
	_, err := LoadExperimentSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseExperimentSpec_UnknownField_Rejected(t *testing.T) {
	// GIVEN a typo in a key
	data := strings.Replace(minimalSpec, "customers:", "custmers:", 1)

	// WHEN parsed
	_, err := ParseExperimentSpec([]byte(data))

	// THEN strict decoding rejects it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custmers")
}

func TestParseExperimentSpec_EmpiricalTable(t *testing.T) {
	data := `
customers: 1
arrival:
  type: empirical
  table:
    - {value: 1, prob: 0.5}
    - {value: 2, prob: 0.5}
servers:
  - service: {type: constant, value: 1}
`
	spec, err := ParseExperimentSpec([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []variate.Outcome{{Value: 1, Prob: 0.5}, {Value: 2, Prob: 0.5}}, spec.Arrival.Table)
}

func TestParseExperimentSpec_NaNCompletion_RejectedByValidate(t *testing.T) {
	// GIVEN a YAML completion time of .nan, which decodes to NaN
	data := minimalSpec + `
initial_in_service:
  - server: 0
    completes_at: .nan
`
	spec, err := ParseExperimentSpec([]byte(data))
	require.NoError(t, err)
	require.True(t, math.IsNaN(spec.InitialInService[0].CompletesAt))

	// WHEN built
	_, err = spec.Build()

	// THEN validation stops it before it reaches the event list
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completes_at")
}

func TestCapacity_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		in      string
		want    sim.Capacity
		wantErr bool
	}{
		{"capacity: unbounded", sim.Unbounded, false},
		{"capacity: 0", 0, false},
		{"capacity: 4", 4, false},
		{"capacity: -1", 0, true},
		{"capacity: lots", 0, true},
		{"capacity: [1]", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v struct {
				Capacity Capacity `yaml:"capacity"`
			}
			err := yaml.Unmarshal([]byte(tt.in), &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sim.Capacity(v.Capacity))
		})
	}
}

func TestCapacity_MarshalYAML(t *testing.T) {
	spec := &ExperimentSpec{}
	spec.SetCapacity(sim.Unbounded)
	out, err := yaml.Marshal(spec.Capacity)
	require.NoError(t, err)
	assert.Equal(t, "unbounded\n", string(out))

	spec.SetCapacity(3)
	out, err = yaml.Marshal(spec.Capacity)
	require.NoError(t, err)
	assert.Equal(t, "3\n", string(out))
}

func TestExperimentSpec_SimCapacity_DefaultsToUnbounded(t *testing.T) {
	spec := &ExperimentSpec{}
	assert.Equal(t, sim.Unbounded, spec.SimCapacity())
}

func TestExperimentSpec_Validate(t *testing.T) {
	valid := func() *ExperimentSpec {
		spec, err := ParseExperimentSpec([]byte(minimalSpec))
		require.NoError(t, err)
		return spec
	}
	tests := []struct {
		name    string
		mutate  func(*ExperimentSpec)
		wantErr string
	}{
		{"valid", func(*ExperimentSpec) {}, ""},
		{"bad version", func(s *ExperimentSpec) { s.Version = "9" }, "version"},
		{"negative customers", func(s *ExperimentSpec) { s.Customers = -3 }, "customers"},
		{"unknown arrival type", func(s *ExperimentSpec) { s.Arrival.Type = "poisson" }, "arrival"},
		{"arrival ignored without customers", func(s *ExperimentSpec) { s.Customers = 0; s.Arrival = DistSpec{} }, ""},
		{"no servers", func(s *ExperimentSpec) { s.Servers = nil }, "server"},
		{"empty empirical table", func(s *ExperimentSpec) { s.Servers[0].Service = DistSpec{Type: "empirical"} }, "servers[0].service"},
		{"empty sequence", func(s *ExperimentSpec) { s.Servers[0].Service = DistSpec{Type: "sequence"} }, "values"},
		{"non-positive exponential", func(s *ExperimentSpec) { s.Servers[0].Service = DistSpec{Type: "exponential"} }, "mean"},
		{"initial server out of range", func(s *ExperimentSpec) {
			s.InitialInService = []InitialServiceSpec{{Server: 3, CompletesAt: 1}}
		}, "initial_in_service[0]"},
		{"negative completes_at", func(s *ExperimentSpec) {
			s.InitialInService = []InitialServiceSpec{{Server: 0, CompletesAt: -2}}
		}, "completes_at"},
		{"NaN completes_at", func(s *ExperimentSpec) {
			s.InitialInService = []InitialServiceSpec{{Server: 0, CompletesAt: math.NaN()}}
		}, "completes_at"},
		{"infinite completes_at", func(s *ExperimentSpec) {
			s.InitialInService = []InitialServiceSpec{{Server: 0, CompletesAt: math.Inf(1)}}
		}, "completes_at"},
		{"bad trace", func(s *ExperimentSpec) { s.Trace = "all" }, "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := valid()
			tt.mutate(spec)
			err := spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
