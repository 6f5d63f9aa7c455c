package domain

import m "gooze.dev/pkg/gomutest/internal/model"

// Classify maps the exit status of a verification run to a verdict.
// It is total: any status other than 0, 1 or 2 is Unknown, so one odd
// trial never aborts a batch.
func Classify(mutant m.Mutant, status int) m.TrialResult {
	return m.TrialResult{
		Mutant:  mutant,
		Status:  status,
		Verdict: verdictFor(status),
	}
}

func verdictFor(status int) m.Verdict {
	switch status {
	case 0:
		return m.Survived
	case 1:
		return m.Detected
	case 2:
		return m.Errored
	default:
		return m.Unknown
	}
}
