package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVRecorder appends per-customer rows to a CSV file. The first column
// carries the run ID so several runs can share one file.
type CSVRecorder struct {
	file   *os.File
	writer *csv.Writer
	closed bool
}

// NewCSVRecorder creates path, truncating any existing file, and writes
// the header row.
func NewCSVRecorder(path string) (*CSVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating csv output: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"run_id"}, Columns...)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	return &CSVRecorder{file: f, writer: w}, nil
}

// Record appends one row per customer and flushes.
func (r *CSVRecorder) Record(run *Run) error {
	for _, c := range run.Customers {
		if err := r.writer.Write(append([]string{run.ID}, customerRow(c, run.Servers)...)); err != nil {
			return fmt.Errorf("writing csv row for customer %d: %w", c.ID, err)
		}
	}
	r.writer.Flush()
	return r.writer.Error()
}

// Close flushes and closes the file. Later calls are no-ops.
func (r *CSVRecorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.writer.Flush()
	if err := r.writer.Error(); err != nil {
		_ = r.file.Close()
		return err
	}
	return r.file.Close()
}
