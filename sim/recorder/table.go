package recorder

import (
	"io"
	"strings"
	"text/tabwriter"
)

// TableRecorder prints each run as an aligned per-customer table.
type TableRecorder struct {
	w io.Writer
}

// NewTableRecorder returns a recorder writing to w.
func NewTableRecorder(w io.Writer) *TableRecorder {
	return &TableRecorder{w: w}
}

// Record writes a header line followed by one row per customer.
func (r *TableRecorder) Record(run *Run) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	if _, err := io.WriteString(tw, strings.Join(Columns, "\t")+"\n"); err != nil {
		return err
	}
	for _, c := range run.Customers {
		if _, err := io.WriteString(tw, strings.Join(customerRow(c, run.Servers), "\t")+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Close is a no-op; the caller owns w.
func (r *TableRecorder) Close() error { return nil }
