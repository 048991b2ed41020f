// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package atlas indexes extracted shapes together with a muscle mapping in
// a SQLite database so that shapes can be looked up by muscle and muscles
// by shape.
package atlas

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/muscle-mapper/internal/mapping"
	"github.com/pdiddy/muscle-mapper/pkg/types"
)

const dbFile = "atlas.db"

// Store manages the atlas database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the atlas database at <cfg.Dir>/atlas.db and
// creates the schema if it does not exist.
func NewStore(cfg types.AtlasConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, &types.IOError{Op: "mkdir", Path: cfg.Dir, Err: err}
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return filepath.Join(s.dir, dbFile) }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS shapes (
			id TEXT PRIMARY KEY,
			d TEXT NOT NULL,
			style TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS muscles (
			key TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			label_fold TEXT NOT NULL,
			view TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS muscle_shapes (
			muscle_key TEXT NOT NULL REFERENCES muscles(key) ON DELETE CASCADE,
			shape_id TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_muscle_shapes_shape ON muscle_shapes(shape_id)`,
		`CREATE INDEX IF NOT EXISTS idx_muscles_view ON muscles(view)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from an indexing run.
type IndexSummary struct {
	Shapes  int
	Muscles int

	// Skipped counts muscle entries left out because a required field is
	// missing or malformed.
	Skipped int

	// UnknownRefs counts shape references that name no extracted shape.
	// They are stored as given.
	UnknownRefs int
}

// Index replaces the atlas contents with shapes and the complete muscle
// entries of doc, in one transaction. On error the previous contents are
// kept.
func (s *Store) Index(ctx context.Context, shapes []types.ShapeRecord, doc *mapping.Document) (IndexSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM muscle_shapes`,
		`DELETE FROM muscles`,
		`DELETE FROM shapes`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return IndexSummary{}, fmt.Errorf("clearing atlas: %w", err)
		}
	}

	var summary IndexSummary

	shapeStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO shapes (id, d, style, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing shape insert: %w", err)
	}
	defer shapeStmt.Close()

	known := make(map[string]bool, len(shapes))
	for i, sh := range shapes {
		// First occurrence wins for duplicated identifiers.
		if sh.ID == "" || known[sh.ID] {
			continue
		}
		if _, err := shapeStmt.ExecContext(ctx, sh.ID, sh.D, sh.Style, i); err != nil {
			return IndexSummary{}, fmt.Errorf("inserting shape %s: %w", sh.ID, err)
		}
		known[sh.ID] = true
		summary.Shapes++
	}

	muscleStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO muscles (key, label, label_fold, view, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing muscle insert: %w", err)
	}
	defer muscleStmt.Close()

	linkStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO muscle_shapes (muscle_key, shape_id, position) VALUES (?, ?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing link insert: %w", err)
	}
	defer linkStmt.Close()

	for i, e := range doc.Muscles() {
		m := e.Muscle
		if m == nil || !m.Complete() {
			summary.Skipped++
			continue
		}
		if _, err := muscleStmt.ExecContext(ctx, e.Key, m.Label, foldLabel(m.Label), m.View, i); err != nil {
			return IndexSummary{}, fmt.Errorf("inserting muscle %s: %w", e.Key, err)
		}
		for j, id := range m.SvgIDs {
			if !known[id] {
				summary.UnknownRefs++
			}
			if _, err := linkStmt.ExecContext(ctx, e.Key, id, j); err != nil {
				return IndexSummary{}, fmt.Errorf("linking %s to %s: %w", e.Key, id, err)
			}
		}
		summary.Muscles++
	}

	if err := tx.Commit(); err != nil {
		return IndexSummary{}, fmt.Errorf("committing atlas: %w", err)
	}
	return summary, nil
}

// foldLabel case-folds a label for substring search. SQLite's lower() only
// folds ASCII, so folding happens here for both the stored label and the
// query.
func foldLabel(s string) string {
	return strings.ToLower(s)
}
