// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

// --- test helpers ---

func threeShapes() []types.ShapeRecord {
	return []types.ShapeRecord{
		{ID: "pathA", D: "M0 0", Style: "fill:#f39079"},
		{ID: "pathB", D: "M1 1", Style: "fill:#f39079"},
		{ID: "pathC", D: "M2 2", Style: "fill:#f39079"},
	}
}

func writeMapping(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeJSONString(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := Decode([]byte(content), FormatJSON)
	require.NoError(t, err)
	return doc
}

func messages(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Message)
	}
	return out
}

func keys(doc *Document) []string {
	out := make([]string, 0, doc.Len())
	for _, e := range doc.Entries() {
		out = append(out, e.Key)
	}
	return out
}
