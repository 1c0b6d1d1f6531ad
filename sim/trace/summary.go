package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents int
	Outcomes    map[Outcome]int
	MaxQueueLen int
	MaxBusy     int
	EndTime     float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		Outcomes: make(map[Outcome]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Records)
	for _, r := range st.Records {
		summary.Outcomes[r.Outcome]++
		if r.QueueLen > summary.MaxQueueLen {
			summary.MaxQueueLen = r.QueueLen
		}
		if r.BusyServers > summary.MaxBusy {
			summary.MaxBusy = r.BusyServers
		}
		if r.Time > summary.EndTime {
			summary.EndTime = r.Time
		}
	}
	return summary
}
