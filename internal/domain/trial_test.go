package domain

import (
	"testing"

	m "gooze.dev/pkg/gomutest/internal/model"
)

func TestClassify(t *testing.T) {
	mutant := m.Mutant{Source: "calc.go", Site: addSite, Replacement: "-"}

	tests := []struct {
		status int
		want   m.Verdict
		name   string
	}{
		{status: 0, want: m.Survived, name: "SURVIVED"},
		{status: 1, want: m.Detected, name: "DETECTED"},
		{status: 2, want: m.Errored, name: "ERROR"},
		{status: 3, want: m.Unknown, name: "UNKNOWN"},
		{status: -1, want: m.Unknown, name: "UNKNOWN"},
		{status: 137, want: m.Unknown, name: "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(mutant, tt.status)

			if got.Verdict != tt.want {
				t.Errorf("Classify(%d).Verdict = %v, want %v", tt.status, got.Verdict, tt.want)
			}

			if got.Verdict.String() != tt.name {
				t.Errorf("Classify(%d).Verdict.String() = %q, want %q", tt.status, got.Verdict.String(), tt.name)
			}

			if got.Status != tt.status || got.Mutant.Site != mutant.Site {
				t.Errorf("Classify(%d) lost its inputs: %+v", tt.status, got)
			}
		})
	}
}
