package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gooze.dev/pkg/gomutest/internal/adapter"
	"gooze.dev/pkg/gomutest/internal/controller"
	m "gooze.dev/pkg/gomutest/internal/model"
)

const recursiveSuffix = "/..."

// ListArgs selects the source files and sites a command works on.
type ListArgs struct {
	Paths        []m.Path
	Exclude      []string
	CoverageFile m.Path
	OnlyCovered  bool
	Categories   []m.Category
	Threads      int
}

// MutateArgs selects a single mutation.
type MutateArgs struct {
	Source      m.Path
	Site        m.Site
	Replacement string
}

// RunArgs configures a full mutation run.
type RunArgs struct {
	ListArgs
	Reports         m.Path
	ReportFormat    string
	MutationTimeout time.Duration
}

// ReportArgs locates stored reports.
type ReportArgs struct {
	Reports      m.Path
	ReportFormat string
}

// Workflow is the set of use cases exposed by the CLI.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
	Mutate(ctx context.Context, args MutateArgs) error
	Run(ctx context.Context, args RunArgs) error
	Report(ctx context.Context, args ReportArgs) error
}

// ReportStoreFactory returns the report store for a format name.
type ReportStoreFactory func(format string) (adapter.ReportStore, error)

type workflow struct {
	adapter.SourceFSAdapter
	parser   adapter.GoFileAdapter
	coverage adapter.CoverProfileReader
	stores   ReportStoreFactory
	ui       controller.UI
	Orchestrator
	builder *Builder
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	parser adapter.GoFileAdapter,
	coverage adapter.CoverProfileReader,
	stores ReportStoreFactory,
	ui controller.UI,
	builder *Builder,
	orchestrator Orchestrator,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		parser:          parser,
		coverage:        coverage,
		stores:          stores,
		ui:              ui,
		Orchestrator:    orchestrator,
		builder:         builder,
	}
}

// List prints every candidate site of the selected files.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	genomes, err := w.loadGenomes(ctx, args)
	if err != nil {
		return err
	}

	var rows []controller.TargetRow

	for _, g := range genomes {
		targets, err := g.Targets()
		if err != nil {
			return err
		}

		covered, err := w.coveredOrNil(g, args)
		if err != nil {
			return err
		}

		for _, site := range targets.Sorted() {
			isCovered := covered != nil && covered.Contains(site)
			if args.OnlyCovered && !isCovered {
				continue
			}

			rule, _ := g.Catalog().Lookup(site.Kind, site.Op)
			rows = append(rows, controller.TargetRow{
				Source:       g.Source(),
				Site:         site,
				Category:     rule.Category,
				Alternatives: g.Catalog().Alternatives(site.Kind, site.Op),
				Covered:      isCovered,
			})
		}
	}

	return w.ui.DisplayTargets(ctx, rows)
}

// coveredOrNil returns the covered targets when coverage is requested or
// the coverage file exists. Without coverage it returns nil.
func (w *workflow) coveredOrNil(g *Genome, args ListArgs) (m.SiteSet, error) {
	if !args.OnlyCovered {
		if _, err := w.FileInfo(g.CoverageFile()); err != nil {
			return nil, nil
		}
	}

	return g.CoveredTargets()
}

// Mutate builds one mutant, writes it to its cache slot and shows the diff.
// The slot is left in place so the overlay can be used by hand.
func (w *workflow) Mutate(ctx context.Context, args MutateArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g := NewGenome(
		WithSource(args.Source),
		WithCatalog(w.builder.collector.Catalog()),
		WithAdapters(w.SourceFSAdapter, w.parser, w.coverage),
	)

	tree, err := g.Tree()
	if err != nil {
		return err
	}

	mutant, err := w.builder.Build(tree, args.Source, args.Site, args.Replacement)
	if err != nil {
		return fmt.Errorf("build mutant: %w", err)
	}

	if err := w.builder.Persist(mutant); err != nil {
		return fmt.Errorf("persist mutant: %w", err)
	}

	diff, err := w.builder.Diff(tree, mutant)
	if err != nil {
		return fmt.Errorf("diff mutant: %w", err)
	}

	return w.ui.DisplayMutant(ctx, mutant, diff)
}

// Run tries every alternative of every selected site, one trial at a time,
// and stores the reports.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	store, err := w.stores(args.ReportFormat)
	if err != nil {
		return err
	}

	genomes, err := w.loadGenomes(ctx, args.ListArgs)
	if err != nil {
		return err
	}

	total, err := w.countTrials(genomes, args.OnlyCovered)
	if err != nil {
		return err
	}

	var (
		results []m.TrialResult
		runErr  error
	)

	w.ui.StartRun(ctx, total)

	for _, g := range genomes {
		trials, err := w.runGenome(ctx, g, args)
		results = append(results, trials...)

		if err != nil {
			runErr = err
			break
		}
	}

	w.ui.FinishRun(ctx)

	// An interrupted run keeps the trials it completed. With none, the
	// reports of the previous run are left alone.
	if runErr != nil && len(results) == 0 {
		return runErr
	}

	if err := saveResults(store, args.Reports, results); err != nil {
		return errors.Join(runErr, err)
	}

	if runErr != nil {
		slog.Warn("Run interrupted, partial reports saved", "trials", len(results), "error", runErr)
		return runErr
	}

	w.ui.DisplaySummary(ctx, TallyResults(results))

	return nil
}

func saveResults(store adapter.ReportStore, path m.Path, results []m.TrialResult) error {
	now := time.Now().UTC()
	reports := make([]m.Report, 0, len(results))

	for _, result := range results {
		reports = append(reports, m.NewReport(result, now))
	}

	if err := store.SaveReports(path, reports); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	return nil
}

// selectedSites returns the sites a run tries in g.
func selectedSites(g *Genome, onlyCovered bool) (m.SiteSet, error) {
	if onlyCovered {
		return g.CoveredTargets()
	}

	return g.Targets()
}

func (w *workflow) countTrials(genomes []*Genome, onlyCovered bool) (int, error) {
	total := 0

	for _, g := range genomes {
		sites, err := selectedSites(g, onlyCovered)
		if err != nil {
			return 0, err
		}

		for site := range sites {
			total += len(g.Catalog().Alternatives(site.Kind, site.Op))
		}
	}

	return total, nil
}

func (w *workflow) runGenome(ctx context.Context, g *Genome, args RunArgs) ([]m.TrialResult, error) {
	sites, err := selectedSites(g, args.OnlyCovered)
	if err != nil {
		return nil, err
	}

	tree, err := g.Tree()
	if err != nil {
		return nil, err
	}

	var results []m.TrialResult

	for _, site := range sites.Sorted() {
		for _, replacement := range g.Catalog().Alternatives(site.Kind, site.Op) {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			result, err := w.trial(ctx, tree, site, replacement, args.MutationTimeout)
			if errors.Is(err, m.ErrCompile) {
				slog.Warn("Skipping mutant that does not compile", "source", g.Source(), "site", site.String(), "replacement", replacement)
				continue
			}

			if err != nil {
				return results, err
			}

			w.ui.DisplayTrial(ctx, result)
			results = append(results, result)
		}
	}

	return results, nil
}

// trial runs one mutant, bounded by timeout when it is positive. A trial cut
// short by the timeout reports adapter.StatusError.
func (w *workflow) trial(ctx context.Context, tree *m.Tree, site m.Site, replacement string, timeout time.Duration) (m.TrialResult, error) {
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return w.TestMutation(ctx, tree, site, replacement)
}

// Report shows the reports saved by the last run.
func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	store, err := w.stores(args.ReportFormat)
	if err != nil {
		return err
	}

	reports, err := store.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.ui.DisplayReports(ctx, reports); err != nil {
		return err
	}

	if len(reports) > 0 {
		w.ui.DisplaySummary(ctx, TallyReports(reports))
	}

	return nil
}

// loadGenomes discovers the source files and parses them concurrently.
// Each Genome is handed back to the caller, which owns it from then on.
func (w *workflow) loadGenomes(ctx context.Context, args ListArgs) ([]*Genome, error) {
	sources, err := w.Sources(args.Paths, args.Exclude)
	if err != nil {
		return nil, err
	}

	catalog := w.builder.collector.Catalog()
	if len(args.Categories) > 0 {
		catalog, err = catalog.Only(args.Categories...)
		if err != nil {
			return nil, err
		}
	}

	coverageFile := args.CoverageFile
	if coverageFile == "" {
		coverageFile = DefaultCoverageFile
	}

	genomes := make([]*Genome, len(sources))

	group, gctx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for i, source := range sources {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			g := NewGenome(
				WithSource(source),
				WithCoverageFile(coverageFile),
				WithCatalog(catalog),
				WithAdapters(w.SourceFSAdapter, w.parser, w.coverage),
			)

			if _, err := g.Targets(); err != nil {
				return err
			}

			genomes[i] = g

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("loaded genomes", "count", len(genomes))

	return genomes, nil
}

// Sources expands path patterns into the non-test Go files they select.
// "dir/..." walks dir recursively; a directory lists its own files; a file
// is taken as is. With no paths the current directory is walked
// recursively. Files matching any exclude expression are dropped.
func (w *workflow) Sources(paths []m.Path, exclude []string) ([]m.Path, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"." + recursiveSuffix}
	}

	seen := make(map[m.Path]struct{})

	var sources []m.Path

	add := func(path string) {
		p := m.Path(filepath.Clean(path))
		if _, ok := seen[p]; ok || isExcluded(string(p), excludes) {
			return
		}

		seen[p] = struct{}{}
		sources = append(sources, p)
	}

	for _, pattern := range paths {
		root, recursive := strings.CutSuffix(string(pattern), recursiveSuffix)
		if root == "" {
			root = "."
		}

		info, err := w.FileInfo(m.Path(root))
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", pattern, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		err = w.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != root && skipDir(info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if isSourceFile(info.Name()) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return sources, nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func isExcluded(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// skipDir mirrors the directories the go command ignores in package patterns.
func skipDir(name string) bool {
	return name == CacheDirName ||
		name == "testdata" ||
		name == "vendor" ||
		strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "_")
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}
