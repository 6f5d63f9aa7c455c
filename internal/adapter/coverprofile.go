package adapter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/tools/cover"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// CoverProfileReader loads previously recorded line coverage.
type CoverProfileReader interface {
	// Read parses the coverage file at path. A missing or unreadable file
	// yields model.ErrCoverageUnavailable, a malformed one model.ErrCoverageCorrupt.
	Read(path m.Path) (m.CoverageRecord, error)
}

// GoCoverProfileReader reads the text format written by `go test -coverprofile`.
type GoCoverProfileReader struct{}

// NewGoCoverProfileReader constructs a GoCoverProfileReader.
func NewGoCoverProfileReader() *GoCoverProfileReader {
	return &GoCoverProfileReader{}
}

// Read implements CoverProfileReader.
func (r *GoCoverProfileReader) Read(path m.Path) (m.CoverageRecord, error) {
	// #nosec G304 - coverage path is chosen by the user
	f, err := os.Open(string(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", m.ErrCoverageUnavailable, path)
		}

		return nil, fmt.Errorf("%w: %s: %w", m.ErrCoverageUnavailable, path, err)
	}

	defer func() { _ = f.Close() }()

	record, err := ParseCoverProfile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return record, nil
}

// ParseCoverProfile converts a `go test -coverprofile` stream into a
// coverage record. Every line spanned by a block with a non-zero count is
// executed; a file whose blocks all have zero counts keeps an empty entry.
func ParseCoverProfile(r io.Reader) (m.CoverageRecord, error) {
	profiles, err := cover.ParseProfilesFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", m.ErrCoverageCorrupt, err)
	}

	record := make(m.CoverageRecord, len(profiles))

	for _, profile := range profiles {
		lines, ok := record[profile.FileName]
		if !ok {
			lines = make(map[int]struct{})
			record[profile.FileName] = lines
		}

		for _, block := range profile.Blocks {
			if block.Count == 0 {
				continue
			}

			for l := block.StartLine; l <= block.EndLine; l++ {
				lines[l] = struct{}{}
			}
		}
	}

	return record, nil
}
