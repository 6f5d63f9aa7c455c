// Package controller provides output adapters for displaying mutation testing results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// TargetRow is one line of the target listing.
type TargetRow struct {
	Source       m.Path
	Site         m.Site
	Category     m.Category
	Alternatives []string
	Covered      bool
}

// UI defines how workflow progress and results are shown to the user.
type UI interface {
	DisplayTargets(ctx context.Context, rows []TargetRow) error
	DisplayMutant(ctx context.Context, mutant m.Mutant, diff string) error
	// StartRun announces a run of total trials. Every StartRun is paired
	// with a FinishRun, also when the run is interrupted.
	StartRun(ctx context.Context, total int)
	DisplayTrial(ctx context.Context, result m.TrialResult)
	FinishRun(ctx context.Context)
	DisplaySummary(ctx context.Context, tally m.Tally)
	DisplayReports(ctx context.Context, reports []m.Report) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
