// Package testutil provides shared test infrastructure for the queue-sim
// packages: the golden dataset of hand-worked runs and float assertions.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one deterministic run. Durations replay cyclically.
type GoldenTestCase struct {
	Name               string        `json:"name"`
	Capacity           int           `json:"capacity"` // -1 = unbounded
	Customers          int           `json:"customers"`
	FirstArrivalAtZero bool          `json:"first_arrival_at_zero"`
	InterArrivals      []float64     `json:"inter_arrivals"`
	ServiceTimes       [][]float64   `json:"service_times"` // one sequence per server
	Metrics            GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected metrics from a golden test case.
type GoldenMetrics struct {
	// Exact match counts
	Arrived int `json:"arrived"`
	Served  int `json:"served"`
	Balked  int `json:"balked"`
	Waited  int `json:"waited"`

	// Derived from the simulation clock
	MeanWait         float64   `json:"mean_wait"`
	ProbWait         float64   `json:"prob_wait"`
	MeanTimeInSystem float64   `json:"mean_time_in_system"`
	EndTime          float64   `json:"end_time"`
	Utilization      []float64 `json:"utilization"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no tests")
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
