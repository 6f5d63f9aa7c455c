package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"gooze.dev/pkg/gomutest/internal/adapter"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// Orchestrator runs a single trial: it builds the mutant, persists it into
// the source file's cache slot, runs the package tests against it and
// classifies the outcome. The slot is emptied before returning.
type Orchestrator interface {
	TestMutation(ctx context.Context, tree *m.Tree, site m.Site, replacement string) (m.TrialResult, error)
}

type orchestrator struct {
	builder     *Builder
	testAdapter adapter.TestRunnerAdapter
}

// NewOrchestrator constructs an Orchestrator backed by the provided builder
// and test runner adapter.
func NewOrchestrator(builder *Builder, testAdapter adapter.TestRunnerAdapter) Orchestrator {
	return &orchestrator{
		builder:     builder,
		testAdapter: testAdapter,
	}
}

func (to *orchestrator) TestMutation(ctx context.Context, tree *m.Tree, site m.Site, replacement string) (m.TrialResult, error) {
	if err := ctx.Err(); err != nil {
		return m.TrialResult{}, err
	}

	mutant, err := to.builder.Build(tree, tree.Path, site, replacement)
	if err != nil {
		slog.Error("Failed to build mutant", "source", tree.Path, "site", site.String(), "error", err)
		return m.TrialResult{}, fmt.Errorf("build mutant: %w", err)
	}

	if err := to.builder.Persist(mutant); err != nil {
		slog.Error("Failed to persist mutant", "cache", mutant.CachePath, "error", err)
		return m.TrialResult{}, fmt.Errorf("persist mutant: %w", err)
	}

	defer to.discard(mutant)

	workDir := filepath.Dir(string(tree.Path))

	output, status, err := to.testAdapter.RunGoTest(ctx, workDir, ".", string(mutant.OverlayPath))
	if err != nil {
		slog.Warn("Trial did not run", "source", tree.Path, "site", site.String(), "error", err)
	}

	result := Classify(mutant, status)
	result.Output = output

	if rule, ok := to.builder.collector.Catalog().Lookup(site.Kind, site.Op); ok {
		result.Category = rule.Category
	}

	slog.Info("Trial finished",
		"source", tree.Path,
		"site", site.String(),
		"replacement", replacement,
		"status", status,
		"verdict", result.Verdict.String(),
	)

	return result, nil
}

// discard empties the cache slot, logging errors if cleanup fails.
func (to *orchestrator) discard(mutant m.Mutant) {
	if err := to.builder.Discard(mutant); err != nil {
		slog.Error("Failed to discard mutant", "cache", mutant.CachePath, "error", err)
	}
}
