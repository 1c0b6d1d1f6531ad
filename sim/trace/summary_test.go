package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalEvents != 0 {
		t.Errorf("expected 0 events, got %d", summary.TotalEvents)
	}
	if summary.Outcomes == nil {
		t.Error("expected non-nil outcome map")
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalEvents != 0 || summary.MaxQueueLen != 0 || summary.MaxBusy != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
	if len(summary.Outcomes) != 0 {
		t.Error("expected empty outcome distribution")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace of a single-server run with one queued and one balked customer
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.Record(EventRecord{Seq: 1, Time: 0, Outcome: OutcomeServed, BusyServers: 1})
	st.Record(EventRecord{Seq: 2, Time: 1, Outcome: OutcomeQueued, QueueLen: 1, BusyServers: 1})
	st.Record(EventRecord{Seq: 3, Time: 2, Outcome: OutcomeBalked, QueueLen: 1, BusyServers: 1})
	st.Record(EventRecord{Seq: 4, Time: 4, Outcome: OutcomeDispatched, BusyServers: 1})
	st.Record(EventRecord{Seq: 5, Time: 7, Outcome: OutcomeReleased})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalEvents != 5 {
		t.Errorf("expected 5 events, got %d", summary.TotalEvents)
	}
	for _, o := range []Outcome{OutcomeServed, OutcomeQueued, OutcomeBalked, OutcomeDispatched, OutcomeReleased} {
		if summary.Outcomes[o] != 1 {
			t.Errorf("outcome %s: expected 1, got %d", o, summary.Outcomes[o])
		}
	}
	if summary.MaxQueueLen != 1 {
		t.Errorf("expected max queue length 1, got %d", summary.MaxQueueLen)
	}
	if summary.MaxBusy != 1 {
		t.Errorf("expected max busy 1, got %d", summary.MaxBusy)
	}
	if summary.EndTime != 7 {
		t.Errorf("expected end time 7, got %v", summary.EndTime)
	}
}
