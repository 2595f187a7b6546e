// Package history persists one record per batch run in a SQLite database so
// operators can review past runs and their failures. Recording is
// best-effort from the caller's perspective: a history error never changes a
// run's outcome.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"upscaler/internal/fileutil"
	"upscaler/internal/job"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes. Databases with a
// different version are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run is one recorded batch run.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Input       string
	Output      string
	Scale       int
	Model       string
	FaceEnhance bool
	Denoise     bool
	Attempted   int
	Succeeded   int
	Failed      int
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// RecordRun persists one run with its failure records. A missing ID is
// assigned.
func (s *Store) RecordRun(ctx context.Context, run Run, failures []job.Failure) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, input, output, scale, model,
            face_enhance, denoise, attempted, succeeded, failed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Input,
		run.Output,
		run.Scale,
		run.Model,
		boolToInt(run.FaceEnhance),
		boolToInt(run.Denoise),
		run.Attempted,
		run.Succeeded,
		run.Failed,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, failure := range failures {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_failures (run_id, source, message) VALUES (?, ?, ?)",
			run.ID, failure.Source, failure.Message,
		); err != nil {
			return "", fmt.Errorf("insert failure record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input, output, scale, model,
            face_enhance, denoise, attempted, succeeded, failed
        FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		var face, denoised int
		if err := rows.Scan(
			&run.ID, &started, &finished, &run.Input, &run.Output,
			&run.Scale, &run.Model, &face, &denoised,
			&run.Attempted, &run.Succeeded, &run.Failed,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		run.FaceEnhance = face != 0
		run.Denoise = denoised != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Failures returns the failure records for one run.
func (s *Store) Failures(ctx context.Context, runID string) ([]job.Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT source, message FROM run_failures WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var failures []job.Failure
	for rows.Next() {
		var failure job.Failure
		if err := rows.Scan(&failure.Source, &failure.Message); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		failures = append(failures, failure)
	}
	return failures, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
