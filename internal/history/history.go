// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed analysis runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdfcheck/pkg/types"
)

// ErrNotFound is returned when no saved analysis has the requested id.
var ErrNotFound = errors.New("analysis not found")

const defaultListLimit = 20

// Store manages the analysis history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at path. It creates the
// parent directory and the schema if they do not exist.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			pages INTEGER NOT NULL,
			sections INTEGER NOT NULL,
			compliant INTEGER NOT NULL,
			report TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores a completed analysis and returns its id. A missing ID is
// generated; a zero CreatedAt is set to the current UTC time.
func (s *Store) Save(ctx context.Context, rec types.AnalysisRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	reportJSON, err := json.Marshal(rec.Report)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, created_at, source, pages, sections, compliant, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.UTC().Format(time.RFC3339Nano), rec.Source,
		rec.Pages, rec.Sections, rec.Compliant, string(reportJSON),
	)
	if err != nil {
		return "", fmt.Errorf("inserting record: %w", err)
	}
	return rec.ID, nil
}

// Get returns the saved analysis with the given id.
func (s *Store) Get(ctx context.Context, id string) (*types.AnalysisRecord, error) {
	var (
		rec        types.AnalysisRecord
		createdStr string
		reportJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, pages, sections, compliant, report
		 FROM analyses WHERE id = ?`, id,
	).Scan(&rec.ID, &createdStr, &rec.Source, &rec.Pages, &rec.Sections, &rec.Compliant, &reportJSON)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("looking up record: %w", err)
	}

	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(reportJSON), &rec.Report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &rec, nil
}

// List returns saved analyses, newest first. A non-positive limit uses
// the default (20).
func (s *Store) List(ctx context.Context, limit int) ([]types.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, pages, sections, compliant, report
		 FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []types.AnalysisRecord
	for rows.Next() {
		var (
			rec        types.AnalysisRecord
			createdStr string
			reportJSON string
		)
		if err := rows.Scan(&rec.ID, &createdStr, &rec.Source, &rec.Pages,
			&rec.Sections, &rec.Compliant, &reportJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if err := json.Unmarshal([]byte(reportJSON), &rec.Report); err != nil {
			return nil, fmt.Errorf("decoding report: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Export writes the saved analysis's report JSON to w, indented.
func (s *Store) Export(ctx context.Context, id string, w io.Writer) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec.Report)
}

// Stats summarizes the history store contents.
type Stats struct {
	// Runs is the number of saved analyses.
	Runs int

	// LastRun is the newest record's creation time; zero when empty.
	LastRun time.Time
}

// Stats reports the row count and the most recent run time.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		st   Stats
		last sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MAX(created_at) FROM analyses`,
	).Scan(&st.Runs, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("querying stats: %w", err)
	}

	if last.Valid {
		t, err := time.Parse(time.RFC3339Nano, last.String)
		if err != nil {
			return Stats{}, fmt.Errorf("parsing last run time: %w", err)
		}
		st.LastRun = t
	}
	return st, nil
}
