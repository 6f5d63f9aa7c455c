package domain

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"gooze.dev/pkg/gomutest/internal/adapter"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// DefaultCoverageFile is the coverage profile consulted when none is configured.
const DefaultCoverageFile m.Path = ".coverage"

// CoverageFilter restricts candidate sites to lines recorded as executed.
//
// A missing or unreadable coverage file is an error wrapping
// model.ErrCoverageUnavailable. A readable profile without an entry for the
// source file means the file was never exercised: the result is empty.
type CoverageFilter struct {
	file   m.Path
	reader adapter.CoverProfileReader
	fs     adapter.SourceFSAdapter

	record m.CoverageRecord
	loaded bool
}

// NewCoverageFilter returns a filter over the profile at file. The profile is
// read on first use and reused afterwards.
func NewCoverageFilter(file m.Path, reader adapter.CoverProfileReader, fs adapter.SourceFSAdapter) *CoverageFilter {
	return &CoverageFilter{file: file, reader: reader, fs: fs}
}

// File returns the coverage profile path.
func (f *CoverageFilter) File() m.Path {
	return f.file
}

// Filter returns the members of sites whose line was executed in source.
func (f *CoverageFilter) Filter(source m.Path, sites m.SiteSet) (m.SiteSet, error) {
	record, err := f.load()
	if err != nil {
		return nil, err
	}

	lines, ok := f.linesFor(record, source)
	if !ok {
		slog.Debug("no coverage entry for source", "source", source, "coverage", f.file)
		return m.SiteSet{}, nil
	}

	covered := make(m.SiteSet)

	for site := range sites {
		if _, ok := lines[site.Line]; ok {
			covered.Add(site)
		}
	}

	return covered, nil
}

func (f *CoverageFilter) load() (m.CoverageRecord, error) {
	if f.loaded {
		return f.record, nil
	}

	record, err := f.reader.Read(f.file)
	if err != nil {
		slog.Error("failed to load coverage", "coverage", f.file, "error", err)
		return nil, err
	}

	f.record, f.loaded = record, true

	return record, nil
}

// linesFor finds the executed lines for source under any key the profile may
// use for it: the absolute path, the legacy "_"-prefixed absolute path used
// outside modules, or the import-path form "<module>/<rel path>".
func (f *CoverageFilter) linesFor(record m.CoverageRecord, source m.Path) (map[int]struct{}, bool) {
	for _, key := range f.keysFor(source) {
		if lines, ok := record.Lines(key); ok {
			return lines, true
		}
	}

	return nil, false
}

func (f *CoverageFilter) keysFor(source m.Path) []string {
	abs, err := f.fs.AbsPath(source)
	if err != nil {
		return []string{string(source)}
	}

	keys := []string{string(abs), "_" + string(abs)}

	root, err := f.fs.FindProjectRoot(abs)
	if err != nil {
		return keys
	}

	modulePath, err := f.fs.ModulePath(root)
	if err != nil {
		slog.Debug("cannot read module path", "root", root, "error", err)
		return keys
	}

	rel, err := filepath.Rel(string(root), string(abs))
	if err != nil {
		return keys
	}

	return append(keys, fmt.Sprintf("%s/%s", modulePath, filepath.ToSlash(rel)))
}
