// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extracted metadata records in SQLite so searches
// and exports can run without re-reading the PDFs. Each record remembers the
// modification time of its source file, which lets indexing skip files that
// have not changed.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// ErrNotFound is returned by Get when no record exists for a file name.
var ErrNotFound = errors.New("record not found")

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at cfg.Path, creating parent
// directories and the schema when they do not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: catalog path is empty", types.ErrInvalidConfig)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			file_name TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			abstract TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '[]',
			file_size INTEGER NOT NULL DEFAULT 0,
			extracted_at TEXT NOT NULL DEFAULT '',
			file_mod_time TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_year ON records(year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put inserts or replaces the record for rec.FileName, remembering modTime
// as the source file's modification time.
func (s *Store) Put(ctx context.Context, rec types.MetadataRecord, modTime time.Time) error {
	keywords := rec.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	kwJSON, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords for %s: %w", rec.FileName, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (file_name, title, author, year, abstract, keywords, file_size, extracted_at, file_mod_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_name) DO UPDATE SET
			title=excluded.title, author=excluded.author, year=excluded.year,
			abstract=excluded.abstract, keywords=excluded.keywords, file_size=excluded.file_size,
			extracted_at=excluded.extracted_at, file_mod_time=excluded.file_mod_time`,
		rec.FileName, rec.Title, rec.Author, rec.Year, rec.Abstract, string(kwJSON),
		rec.FileSize, formatTime(rec.ExtractedAt), formatTime(modTime),
	)
	if err != nil {
		return fmt.Errorf("upserting record %s: %w", rec.FileName, err)
	}
	return nil
}

// Get returns the record for fileName, or ErrNotFound.
func (s *Store) Get(ctx context.Context, fileName string) (types.MetadataRecord, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+` WHERE file_name = ?`, fileName)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.MetadataRecord{}, fmt.Errorf("%w: %s", ErrNotFound, fileName)
	}
	return rec, err
}

// All returns every record ordered by file name.
func (s *Store) All(ctx context.Context) ([]types.MetadataRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+` ORDER BY file_name`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	recs := []types.MetadataRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Unchanged reports whether a record exists for fileName and was indexed
// from a source with the same modification time.
func (s *Store) Unchanged(ctx context.Context, fileName string, modTime time.Time) (bool, error) {
	known, stored, err := s.modTime(ctx, fileName)
	if err != nil || !known {
		return false, err
	}
	return stored == formatTime(modTime), nil
}

// Delete removes the record for fileName. Deleting a missing record is not
// an error.
func (s *Store) Delete(ctx context.Context, fileName string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE file_name = ?`, fileName); err != nil {
		return fmt.Errorf("deleting record %s: %w", fileName, err)
	}
	return nil
}

func (s *Store) modTime(ctx context.Context, fileName string) (known bool, stored string, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM records WHERE file_name = ?`, fileName,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("checking %s: %w", fileName, err)
	}
	return true, stored, nil
}

const selectRecord = `SELECT file_name, title, author, year, abstract, keywords, file_size, extracted_at FROM records`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (types.MetadataRecord, error) {
	var (
		rec         types.MetadataRecord
		kwJSON      string
		extractedAt string
	)
	if err := sc.Scan(&rec.FileName, &rec.Title, &rec.Author, &rec.Year, &rec.Abstract,
		&kwJSON, &rec.FileSize, &extractedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scanning record: %w", err)
	}

	rec.Keywords = []string{}
	if err := json.Unmarshal([]byte(kwJSON), &rec.Keywords); err != nil {
		return rec, fmt.Errorf("decoding keywords for %s: %w", rec.FileName, err)
	}
	if rec.Keywords == nil {
		rec.Keywords = []string{}
	}
	if extractedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, extractedAt)
		if err != nil {
			return rec, fmt.Errorf("parsing extracted_at for %s: %w", rec.FileName, err)
		}
		rec.ExtractedAt = t
	}
	return rec, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
