package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	m "gooze.dev/pkg/gomutest/internal/model"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	ReportFormatYAML   = "yaml"
	ReportFormatSQLite = "sqlite"
)

const yamlReportFile = "reports.yaml"

// ReportStore persists trial reports under a reports directory.
type ReportStore interface {
	SaveReports(path m.Path, reports []m.Report) error
	LoadReports(path m.Path) ([]m.Report, error)
}

// NewReportStore returns the store for format.
func NewReportStore(format string) (ReportStore, error) {
	switch format {
	case "", ReportFormatYAML:
		return NewYAMLReportStore(), nil
	case ReportFormatSQLite:
		return NewSQLiteReportStore(), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// YAMLReportStore keeps every report of the last run in a single YAML document.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

type yamlReports struct {
	Version int        `yaml:"version"`
	Reports []m.Report `yaml:"reports"`
}

// SaveReports replaces the reports file in path.
func (s *YAMLReportStore) SaveReports(path m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(path), 0o750); err != nil {
		return fmt.Errorf("create reports dir %s: %w", path, err)
	}

	content, err := yaml.Marshal(yamlReports{Version: 1, Reports: reports})
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	target := filepath.Join(string(path), yamlReportFile)
	if err := os.WriteFile(target, content, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	return nil
}

// LoadReports reads the reports file in path. A missing file yields no reports.
func (s *YAMLReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	target := filepath.Join(string(path), yamlReportFile)

	// #nosec G304 - reports dir is chosen by the user
	content, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read %s: %w", target, err)
	}

	var doc yamlReports
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", target, err)
	}

	return doc.Reports, nil
}
