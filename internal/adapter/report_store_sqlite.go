package adapter

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	m "gooze.dev/pkg/gomutest/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteReportFile = "reports.db"

const reportSchema = `
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	site TEXT NOT NULL,
	category TEXT NOT NULL,
	replacement TEXT NOT NULL,
	status INTEGER NOT NULL,
	verdict TEXT NOT NULL,
	recorded_at TEXT NOT NULL,
	UNIQUE (source, site, replacement)
);

CREATE INDEX IF NOT EXISTS idx_reports_verdict ON reports(verdict);
`

// SQLiteReportStore keeps reports in a SQLite database, one row per
// (source, site, replacement). Re-running a mutant replaces its row.
type SQLiteReportStore struct{}

// NewSQLiteReportStore constructs a SQLiteReportStore.
func NewSQLiteReportStore() *SQLiteReportStore {
	return &SQLiteReportStore{}
}

func (s *SQLiteReportStore) open(path m.Path) (*sql.DB, error) {
	dbPath := filepath.Join(string(path), sqliteReportFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(reportSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SaveReports upserts reports into path/reports.db.
func (s *SQLiteReportStore) SaveReports(path m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(path), 0o750); err != nil {
		return fmt.Errorf("create reports dir %s: %w", path, err)
	}

	db, err := s.open(path)
	if err != nil {
		return err
	}

	defer func() { _ = db.Close() }()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, r := range reports {
		_, err := tx.Exec(`
			INSERT OR REPLACE INTO reports (source, site, category, replacement, status, verdict, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, string(r.Source), r.Site, string(r.Category), r.Replacement, r.Status, r.Verdict, r.RecordedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert report for %s %s: %w", r.Source, r.Site, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reports: %w", err)
	}

	return nil
}

// LoadReports returns every stored report ordered by source and site.
// A missing database yields no reports.
func (s *SQLiteReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	if _, err := os.Stat(filepath.Join(string(path), sqliteReportFile)); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	db, err := s.open(path)
	if err != nil {
		return nil, err
	}

	defer func() { _ = db.Close() }()

	rows, err := db.Query(`
		SELECT source, site, category, replacement, status, verdict, recorded_at
		FROM reports
		ORDER BY source, site, replacement
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var reports []m.Report

	for rows.Next() {
		var (
			r                          m.Report
			source, category, recorded string
		)

		if err := rows.Scan(&source, &r.Site, &category, &r.Replacement, &r.Status, &r.Verdict, &recorded); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		r.Source = m.Path(source)
		r.Category = m.Category(category)

		if r.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded); err != nil {
			return nil, fmt.Errorf("bad recorded_at %q: %w", recorded, err)
		}

		reports = append(reports, r)
	}

	return reports, rows.Err()
}
