// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package atlas

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

// ExportEntry is one muscle with the geometry of every shape it uses.
type ExportEntry struct {
	Key    string        `json:"key" yaml:"key"`
	Label  string        `json:"label" yaml:"label"`
	View   string        `json:"view" yaml:"view"`
	Shapes []ExportShape `json:"shapes" yaml:"shapes"`
}

// ExportShape is a referenced shape. Missing is set when the reference
// names no extracted shape; D and Style are then empty.
type ExportShape struct {
	ID      string `json:"id" yaml:"id"`
	D       string `json:"d,omitempty" yaml:"d,omitempty"`
	Style   string `json:"style,omitempty" yaml:"style,omitempty"`
	Missing bool   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// ExportYAML writes every muscle with its shapes to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeFile(path, data)
}

// ExportJSON writes every muscle with its shapes to path as JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	records, err := s.Lookup(ctx, LookupOptions{Limit: -1})
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, 0, len(records))
	for _, r := range records {
		shapes, err := s.exportShapes(ctx, r.Key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ExportEntry{Key: r.Key, Label: r.Label, View: r.View, Shapes: shapes})
	}
	return entries, nil
}

func (s *Store) exportShapes(ctx context.Context, key string) ([]ExportShape, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ms.shape_id, sh.d, sh.style
		FROM muscle_shapes ms
		LEFT JOIN shapes sh ON sh.id = ms.shape_id
		WHERE ms.muscle_key = ?
		ORDER BY ms.position`, key)
	if err != nil {
		return nil, fmt.Errorf("querying shapes of %s: %w", key, err)
	}
	defer rows.Close()

	shapes := []ExportShape{}
	for rows.Next() {
		var (
			es    ExportShape
			d     sql.NullString
			style sql.NullString
		)
		if err := rows.Scan(&es.ID, &d, &style); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if d.Valid {
			es.D, es.Style = d.String, style.String
		} else {
			es.Missing = true
		}
		shapes = append(shapes, es)
	}
	return shapes, rows.Err()
}
