package domain

import m "gooze.dev/pkg/gomutest/internal/model"

// TallyResults counts the verdicts of a run.
func TallyResults(results []m.TrialResult) m.Tally {
	var t m.Tally
	for _, r := range results {
		t.Add(r.Verdict)
	}

	return t
}

// TallyReports counts the verdicts of stored reports.
func TallyReports(reports []m.Report) m.Tally {
	var t m.Tally
	for _, r := range reports {
		t.Add(m.ParseVerdict(r.Verdict))
	}

	return t
}
