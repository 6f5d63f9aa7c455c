package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	m "gooze.dev/pkg/gomutest/internal/model"
)

func TestTallyResults(t *testing.T) {
	results := []m.TrialResult{
		{Verdict: m.Detected},
		{Verdict: m.Survived},
		{Verdict: m.Errored},
		{Verdict: m.Unknown},
		{Verdict: m.Detected},
	}

	tally := TallyResults(results)

	assert.Equal(t, m.Tally{Survived: 1, Detected: 2, Errored: 1, Unknown: 1}, tally)
	assert.Equal(t, 5, tally.Total())
	assert.InDelta(t, 66.666, tally.Score(), 0.01)
}

func TestTallyReports(t *testing.T) {
	reports := []m.Report{
		{Verdict: "DETECTED"},
		{Verdict: "SURVIVED"},
		{Verdict: "garbled"},
	}

	assert.Equal(t, m.Tally{Survived: 1, Detected: 1, Unknown: 1}, TallyReports(reports))
	assert.Equal(t, 100.0, TallyReports(nil).Score())
}
