package domain

import (
	"encoding/json"
	"fmt"
	"go/token"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gooze.dev/pkg/gomutest/internal/adapter"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// CacheDirName is the sibling directory that holds rendered mutants. The go
// command ignores directories starting with "_" in package patterns.
const CacheDirName = "__gomutest__"

// CacheTag identifies the toolchain a cache slot was produced for, e.g.
// "gomutest-go1.25".
func CacheTag() string {
	return "gomutest-" + goRelease(runtime.Version())
}

func goRelease(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}

	release := parts[0] + "." + strings.TrimFunc(parts[1], func(r rune) bool { return r < '0' || r > '9' })

	return strings.ReplaceAll(release, " ", "-")
}

// overlay is the JSON document understood by `go build -overlay`.
type overlay struct {
	Replace map[string]string
}

// Builder turns (tree, site, replacement) selections into mutants and
// manages the single cache slot each source file owns.
//
// Only one mutant per source file may be persisted at a time: callers must
// build, persist, trial and discard a mutant before building the next one
// for the same file. Different files use independent slots. The Builder
// does no locking of its own.
type Builder struct {
	collector *Collector
	fs        adapter.SourceFSAdapter
	parser    adapter.GoFileAdapter
}

// NewBuilder constructs a Builder.
func NewBuilder(collector *Collector, fs adapter.SourceFSAdapter, parser adapter.GoFileAdapter) *Builder {
	return &Builder{collector: collector, fs: fs, parser: parser}
}

// CachePath returns the slot the mutant of source is written to.
func (b *Builder) CachePath(source m.Path) (m.Path, error) {
	return b.slotPath(source, ".go")
}

// OverlayPath returns the overlay manifest that redirects source to its slot.
func (b *Builder) OverlayPath(source m.Path) (m.Path, error) {
	return b.slotPath(source, ".overlay.json")
}

func (b *Builder) slotPath(source m.Path, ext string) (m.Path, error) {
	abs, err := b.fs.AbsPath(source)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", source, err)
	}

	dir, base := filepath.Split(string(abs))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return m.Path(filepath.Join(dir, CacheDirName, stem+"."+CacheTag()+ext)), nil
}

// Build applies replacement at site to a private copy of tree, renders the
// result and checks that it parses. tree itself is left untouched.
func (b *Builder) Build(tree *m.Tree, source m.Path, site m.Site, replacement string) (m.Mutant, error) {
	working, err := b.clone(tree)
	if err != nil {
		return m.Mutant{}, err
	}

	if err := b.collector.Mutate(working, site, replacement); err != nil {
		return m.Mutant{}, err
	}

	code, err := b.compile(working)
	if err != nil {
		return m.Mutant{}, err
	}

	cachePath, err := b.CachePath(source)
	if err != nil {
		return m.Mutant{}, err
	}

	overlayPath, err := b.OverlayPath(source)
	if err != nil {
		return m.Mutant{}, err
	}

	slog.Debug("built mutant", "source", source, "site", site.String(), "replacement", replacement)

	return m.Mutant{
		Source:      source,
		Code:        code,
		CachePath:   cachePath,
		OverlayPath: overlayPath,
		Site:        site,
		Replacement: replacement,
	}, nil
}

// clone re-parses the tree's source bytes into a fresh file set. Positions
// are identical to the original, so sites computed on tree resolve in the copy.
func (b *Builder) clone(tree *m.Tree) (*m.Tree, error) {
	if tree == nil || tree.File == nil {
		return nil, fmt.Errorf("build: %w", m.ErrNoSource)
	}

	fset := token.NewFileSet()

	file, err := b.parser.Parse(fset, string(tree.Path), tree.Src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", tree.Path, err)
	}

	return &m.Tree{Fset: fset, File: file, Path: tree.Path, Src: tree.Src}, nil
}

func (b *Builder) compile(tree *m.Tree) ([]byte, error) {
	code, err := b.parser.Render(tree.Fset, tree.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", m.ErrCompile, err)
	}

	if _, err := b.parser.Parse(token.NewFileSet(), string(tree.Path), code); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", m.ErrCompile, tree.Path, err)
	}

	return code, nil
}

// Persist writes the mutant into its source file's cache slot together with
// the overlay manifest. Writing is idempotent; a later mutant for the same
// source replaces the earlier one.
func (b *Builder) Persist(mutant m.Mutant) error {
	dir := m.Path(filepath.Dir(string(mutant.CachePath)))
	if err := b.fs.MkdirAll(dir); err != nil {
		return fmt.Errorf("create cache dir %s: %w", dir, err)
	}

	if err := b.fs.WriteFile(mutant.CachePath, mutant.Code, 0o600); err != nil {
		return fmt.Errorf("write mutant %s: %w", mutant.CachePath, err)
	}

	abs, err := b.fs.AbsPath(mutant.Source)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", mutant.Source, err)
	}

	manifest, err := json.MarshalIndent(overlay{Replace: map[string]string{
		string(abs): string(mutant.CachePath),
	}}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode overlay: %w", err)
	}

	if err := b.fs.WriteFile(mutant.OverlayPath, manifest, 0o600); err != nil {
		return fmt.Errorf("write overlay %s: %w", mutant.OverlayPath, err)
	}

	slog.Debug("persisted mutant", "source", mutant.Source, "cache", mutant.CachePath)

	return nil
}

// Discard empties the mutant's cache slot and removes the cache directory
// once nothing else lives in it.
func (b *Builder) Discard(mutant m.Mutant) error {
	for _, path := range []m.Path{mutant.OverlayPath, mutant.CachePath} {
		if err := b.fs.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}

	dir := m.Path(filepath.Dir(string(mutant.CachePath)))

	empty, err := b.fs.IsEmptyDir(dir)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", dir, err)
	}

	if empty {
		return b.fs.Remove(dir)
	}

	return nil
}

// Diff returns a unified diff from the rendered tree to the mutant.
func (b *Builder) Diff(tree *m.Tree, mutant m.Mutant) (string, error) {
	original, err := b.parser.Render(tree.Fset, tree.File)
	if err != nil {
		return "", err
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutant.Code)),
		FromFile: string(mutant.Source),
		ToFile:   fmt.Sprintf("%s (%s -> %s)", mutant.Source, mutant.Site, mutant.Replacement),
		Context:  3,
	})
}
