// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package atlas

import (
	"context"
	"fmt"
	"strings"
)

const defaultLimit = 50

// LookupOptions filters muscles in the atlas. Filters combine with AND; an
// empty LookupOptions lists every muscle.
type LookupOptions struct {
	// ShapeID selects muscles that reference this shape.
	ShapeID string

	// Label is a case-insensitive substring of the muscle label.
	Label string

	// View selects one view exactly, e.g. "anterior".
	View string

	// Limit caps the result count. Zero uses the default; negative means
	// no limit.
	Limit int
}

// MuscleRecord is one indexed muscle with its shape references in
// document order.
type MuscleRecord struct {
	Key      string   `json:"key" yaml:"key"`
	Label    string   `json:"label" yaml:"label"`
	View     string   `json:"view" yaml:"view"`
	ShapeIDs []string `json:"svg_ids" yaml:"svg_ids"`
}

// Lookup returns the muscles matching opts in document order.
func (s *Store) Lookup(ctx context.Context, opts LookupOptions) ([]MuscleRecord, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT m.key, m.label, m.view FROM muscles m WHERE 1=1`)

	if opts.ShapeID != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM muscle_shapes ms WHERE ms.muscle_key = m.key AND ms.shape_id = ?)`)
		args = append(args, opts.ShapeID)
	}
	if opts.Label != "" {
		qb.WriteString(` AND instr(m.label_fold, ?) > 0`)
		args = append(args, foldLabel(opts.Label))
	}
	if opts.View != "" {
		qb.WriteString(` AND m.view = ?`)
		args = append(args, opts.View)
	}

	qb.WriteString(` ORDER BY m.position LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying atlas: %w", err)
	}

	var records []MuscleRecord
	for rows.Next() {
		var r MuscleRecord
		if err := rows.Scan(&r.Key, &r.Label, &r.View); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range records {
		ids, err := s.shapeIDs(ctx, records[i].Key)
		if err != nil {
			return nil, err
		}
		records[i].ShapeIDs = ids
	}
	return records, nil
}

func (s *Store) shapeIDs(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT shape_id FROM muscle_shapes WHERE muscle_key = ? ORDER BY position`, key)
	if err != nil {
		return nil, fmt.Errorf("querying shapes of %s: %w", key, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
