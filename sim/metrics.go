// Tracks run-wide and per-server performance metrics such as:
// mean wait, probability of waiting, balk rate and server utilization.

package sim

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ServerMetrics summarizes one server's work over the run.
type ServerMetrics struct {
	Name            string
	Served          int
	BusyTime        float64
	Utilization     float64 // BusyTime / EndTime
	MeanServiceTime float64
}

// Metrics aggregates statistics about the simulation for final reporting.
// Wait and service statistics cover completed customers only.
type Metrics struct {
	Arrived int // customers that arrived during the run (including balked, excluding initial in-service)
	Served  int // customers whose service completed
	Balked  int
	Waited  int // served customers that passed through the wait line

	BalkRate          float64 // Balked / Arrived
	ProbWait          float64 // Waited / Served
	MeanWait          float64
	MeanWaitOfWaiters float64
	P90Wait           float64
	MeanServiceTime   float64
	MeanTimeInSystem  float64
	MeanInterArrival  float64 // (last arrival - first arrival) / (arrivals - 1); the wait before the first arrival is not a gap
	EndTime           float64

	Servers []ServerMetrics
}

// ComputeMetrics derives run statistics from the final customer and server state.
func ComputeMetrics(customers []*Customer, servers []*Server, endTime float64) *Metrics {
	m := &Metrics{EndTime: endTime}

	var waits, waiterWaits, services, totals, arrivals []float64
	for _, c := range customers {
		if c.State == StatePending {
			continue
		}
		if !c.Initial {
			m.Arrived++
			arrivals = append(arrivals, c.ArrivalTime)
		}
		if c.Balked() {
			m.Balked++
			continue
		}
		if !c.Completed() {
			continue
		}
		m.Served++
		waits = append(waits, c.WaitTime())
		services = append(services, c.ServiceTime())
		totals = append(totals, c.TotalTime())
		if c.Queued {
			m.Waited++
			waiterWaits = append(waiterWaits, c.WaitTime())
		}
	}

	if m.Arrived > 0 {
		m.BalkRate = float64(m.Balked) / float64(m.Arrived)
	}
	if m.Served > 0 {
		m.ProbWait = float64(m.Waited) / float64(m.Served)
		m.MeanWait = stat.Mean(waits, nil)
		m.MeanServiceTime = stat.Mean(services, nil)
		m.MeanTimeInSystem = stat.Mean(totals, nil)
		sort.Float64s(waits)
		m.P90Wait = stat.Quantile(0.9, stat.Empirical, waits, nil)
	}
	if len(waiterWaits) > 0 {
		m.MeanWaitOfWaiters = stat.Mean(waiterWaits, nil)
	}
	if len(arrivals) > 1 {
		sort.Float64s(arrivals)
		m.MeanInterArrival = (arrivals[len(arrivals)-1] - arrivals[0]) / float64(len(arrivals)-1)
	}

	m.Servers = make([]ServerMetrics, len(servers))
	for i, s := range servers {
		sm := ServerMetrics{Name: s.Name, Served: s.Served, BusyTime: s.BusyTime}
		if endTime > 0 {
			sm.Utilization = s.BusyTime / endTime
		}
		if s.Served > 0 {
			sm.MeanServiceTime = s.BusyTime / float64(s.Served)
		}
		m.Servers[i] = sm
	}
	return m
}

// Print writes the aggregated metrics as an aligned text block.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Customers Arrived       : %d\n", m.Arrived)
	fmt.Fprintf(w, "Customers Served        : %d\n", m.Served)
	fmt.Fprintf(w, "Customers Balked        : %d (%.2f%%)\n", m.Balked, 100*m.BalkRate)
	fmt.Fprintf(w, "Simulation End Time     : %.2f\n", m.EndTime)
	if m.Served > 0 {
		fmt.Fprintf(w, "Average Wait            : %.2f\n", m.MeanWait)
		fmt.Fprintf(w, "Probability of Waiting  : %.2f\n", m.ProbWait)
		fmt.Fprintf(w, "Average Wait (waiters)  : %.2f\n", m.MeanWaitOfWaiters)
		fmt.Fprintf(w, "P90 Wait                : %.2f\n", m.P90Wait)
		fmt.Fprintf(w, "Average Service Time    : %.2f\n", m.MeanServiceTime)
		fmt.Fprintf(w, "Average Time in System  : %.2f\n", m.MeanTimeInSystem)
	}
	if m.MeanInterArrival > 0 {
		fmt.Fprintf(w, "Average Inter-arrival   : %.2f\n", m.MeanInterArrival)
	}
	for _, s := range m.Servers {
		fmt.Fprintf(w, "Server %-16s : served=%d busy=%.2f utilization=%.2f%% avg service=%.2f\n",
			s.Name, s.Served, s.BusyTime, 100*s.Utilization, s.MeanServiceTime)
	}
}
