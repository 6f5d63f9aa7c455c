package domain

import (
	"fmt"
	"go/token"
	"log/slog"

	"gooze.dev/pkg/gomutest/internal/adapter"
	"gooze.dev/pkg/gomutest/internal/domain/mutagens"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// Genome describes one Go source file to be mutated: its syntax tree, the
// sites the catalog finds in it, and the subset of those sites that recorded
// coverage shows as executed. All three are computed on first access and
// recomputed after SetSource or SetCoverageFile.
//
// A Genome is not safe for concurrent use.
type Genome struct {
	source       m.Path
	coverageFile m.Path
	gen          generation

	tree    memo[*m.Tree]
	targets memo[m.SiteSet]
	covered memo[m.SiteSet]
	filter  *CoverageFilter

	collector *Collector
	fs        adapter.SourceFSAdapter
	parser    adapter.GoFileAdapter
	coverage  adapter.CoverProfileReader
}

// GenomeOption configures a Genome.
type GenomeOption func(*Genome)

// WithSource binds the source file.
func WithSource(path m.Path) GenomeOption {
	return func(g *Genome) { g.source = path }
}

// WithCoverageFile sets the coverage profile; the default is DefaultCoverageFile.
func WithCoverageFile(path m.Path) GenomeOption {
	return func(g *Genome) { g.coverageFile = path }
}

// WithCatalog sets the mutation catalog; the default is mutagens.Default().
func WithCatalog(catalog *mutagens.Catalog) GenomeOption {
	return func(g *Genome) { g.collector = NewCollector(catalog) }
}

// WithAdapters replaces the filesystem, parser and coverage adapters.
func WithAdapters(fs adapter.SourceFSAdapter, parser adapter.GoFileAdapter, coverage adapter.CoverProfileReader) GenomeOption {
	return func(g *Genome) {
		g.fs, g.parser, g.coverage = fs, parser, coverage
	}
}

// NewGenome builds a Genome. Without WithSource it is unbound until SetSource.
func NewGenome(opts ...GenomeOption) *Genome {
	g := &Genome{
		coverageFile: DefaultCoverageFile,
		fs:           adapter.NewLocalSourceFSAdapter(),
		parser:       adapter.NewLocalGoFileAdapter(),
		coverage:     adapter.NewGoCoverProfileReader(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.collector == nil {
		g.collector = NewCollector(nil)
	}

	return g
}

// Source returns the bound source file, or "" when unbound.
func (g *Genome) Source() m.Path {
	return g.source
}

// SetSource binds a new source file and drops the tree and every site set.
func (g *Genome) SetSource(path m.Path) {
	g.source = path
	g.gen.source++
}

// CoverageFile returns the coverage profile path.
func (g *Genome) CoverageFile() m.Path {
	return g.coverageFile
}

// SetCoverageFile changes the coverage profile and drops the covered sites only.
func (g *Genome) SetCoverageFile(path m.Path) {
	g.coverageFile = path
	g.filter = nil
	g.gen.coverage++
}

// Catalog returns the catalog used to find sites.
func (g *Genome) Catalog() *mutagens.Catalog {
	return g.collector.Catalog()
}

// Tree returns the parsed source file.
func (g *Genome) Tree() (*m.Tree, error) {
	if g.source == "" {
		return nil, fmt.Errorf("tree: %w", m.ErrNoSource)
	}

	return g.tree.get(generation{source: g.gen.source}, g.parse)
}

func (g *Genome) parse() (*m.Tree, error) {
	src, err := g.fs.ReadFile(g.source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", g.source, err)
	}

	fset := token.NewFileSet()

	file, err := g.parser.Parse(fset, string(g.source), src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", g.source, err)
	}

	slog.Debug("parsed source", "source", g.source, "bytes", len(src))

	return &m.Tree{Fset: fset, File: file, Path: g.source, Src: src}, nil
}

// Targets returns every candidate site in the source file.
func (g *Genome) Targets() (m.SiteSet, error) {
	if g.source == "" {
		return nil, fmt.Errorf("targets: %w", m.ErrNoSource)
	}

	return g.targets.get(generation{source: g.gen.source}, func() (m.SiteSet, error) {
		tree, err := g.Tree()
		if err != nil {
			return nil, err
		}

		sites := g.collector.Collect(tree)
		slog.Debug("collected targets", "source", g.source, "count", sites.Len())

		return sites, nil
	})
}

// CoveredTargets returns the targets whose line the coverage profile marks as
// executed. An unbound genome fails with model.ErrNoSource rather than
// returning an empty set.
func (g *Genome) CoveredTargets() (m.SiteSet, error) {
	if g.source == "" {
		return nil, fmt.Errorf("covered targets: %w", m.ErrNoSource)
	}

	return g.covered.get(g.gen, func() (m.SiteSet, error) {
		targets, err := g.Targets()
		if err != nil {
			return nil, err
		}

		if g.filter == nil {
			g.filter = NewCoverageFilter(g.coverageFile, g.coverage, g.fs)
		}

		return g.filter.Filter(g.source, targets)
	})
}
