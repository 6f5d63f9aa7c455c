package model

import "time"

// Report is the persisted form of a single trial.
type Report struct {
	Source      Path      `yaml:"source"`
	Site        string    `yaml:"site"`
	Category    Category  `yaml:"category"`
	Replacement string    `yaml:"replacement"`
	Status      int       `yaml:"status"`
	Verdict     string    `yaml:"verdict"`
	RecordedAt  time.Time `yaml:"recorded_at"`
}

// NewReport flattens a trial result for storage.
func NewReport(result TrialResult, at time.Time) Report {
	return Report{
		Source:      result.Mutant.Source,
		Site:        result.Mutant.Site.String(),
		Category:    result.Category,
		Replacement: result.Mutant.Replacement,
		Status:      result.Status,
		Verdict:     result.Verdict.String(),
		RecordedAt:  at,
	}
}
