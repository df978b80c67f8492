package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lrclab/internal/engine"
	"lrclab/internal/library"
	"lrclab/internal/timeline"
)

// returned by Load when the project file has never been initialized
var ErrNotInitialized = errors.New("project is not initialized")

// Store persists a project (video reference, segment timeline, text
// library) in a SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the project database and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create project directory: %w", err)
		}
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
	if err := store.applyMigrations(context.Background()); err != nil {
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

// Path returns the project file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) applyMigrations(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS project (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            video_path TEXT NOT NULL DEFAULT '',
            duration REAL NOT NULL DEFAULT 0,
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS segments (
            id TEXT PRIMARY KEY,
            position INTEGER NOT NULL,
            start_time REAL NOT NULL,
            end_time REAL NOT NULL,
            text_ref TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS entries (
            id TEXT PRIMARY KEY,
            position INTEGER NOT NULL,
            text TEXT NOT NULL
        )`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// Save writes the engine state and video path in a single transaction,
// replacing whatever the project held before.
func (s *Store) Save(ctx context.Context, videoPath string, eng *engine.Engine) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	duration := 0.0
	var segments []timeline.Segment
	if tl := eng.Timeline(); tl != nil {
		duration = tl.Duration()
		segments = tl.Segments()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO project (id, video_path, duration, created_at, updated_at)
         VALUES (1, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            video_path = excluded.video_path,
            duration = excluded.duration,
            updated_at = excluded.updated_at`,
		videoPath, duration, now, now,
	); err != nil {
		return fmt.Errorf("save project row: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM segments`); err != nil {
		return fmt.Errorf("clear segments: %w", err)
	}
	for i, seg := range segments {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO segments (id, position, start_time, end_time, text_ref)
             VALUES (?, ?, ?, ?, ?)`,
			seg.ID, i, seg.Start, seg.End, seg.TextRef,
		); err != nil {
			return fmt.Errorf("save segment %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	for i, entry := range eng.Library().Entries() {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO entries (id, position, text) VALUES (?, ?, ?)`,
			entry.ID, i, entry.Text,
		); err != nil {
			return fmt.Errorf("save entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load rebuilds the engine from the project file and validates the
// stored segment partition.
func (s *Store) Load(ctx context.Context) (*engine.Engine, string, error) {
	var videoPath string
	var duration float64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT video_path, duration FROM project WHERE id = 1`,
	).Scan(&videoPath, &duration)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNotInitialized
	}
	if err != nil {
		return nil, "", fmt.Errorf("load project row: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, text FROM entries ORDER BY position`,
	)
	if err != nil {
		return nil, "", fmt.Errorf("load entries: %w", err)
	}
	var stored []library.Entry
	for rows.Next() {
		var entry library.Entry
		if err := rows.Scan(&entry.ID, &entry.Text); err != nil {
			_ = rows.Close()
			return nil, "", fmt.Errorf("scan entry: %w", err)
		}
		stored = append(stored, entry)
	}
	if err := rows.Close(); err != nil {
		return nil, "", fmt.Errorf("read entries: %w", err)
	}
	lib := library.Restore(stored)

	var tl *timeline.Timeline
	if duration > 0 {
		segments, err := s.loadSegments(ctx)
		if err != nil {
			return nil, "", err
		}
		tl, err = timeline.Restore(duration, segments)
		if err != nil {
			return nil, "", fmt.Errorf("stored timeline is corrupt: %w", err)
		}
	}

	return engine.Restore(tl, lib), videoPath, nil
}

func (s *Store) loadSegments(ctx context.Context) ([]timeline.Segment, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, start_time, end_time, text_ref FROM segments ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var segments []timeline.Segment
	for rows.Next() {
		var seg timeline.Segment
		if err := rows.Scan(&seg.ID, &seg.Start, &seg.End, &seg.TextRef); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read segments: %w", err)
	}
	return segments, nil
}
