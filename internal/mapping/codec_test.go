// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

func TestDecodeJSONPreservesOrder(t *testing.T) {
	doc := decodeJSONString(t, `{
		"z_last": {"label": "Z", "svg_ids": ["p3"], "view": "posterior"},
		"_instructions": "fill these in",
		"a_first": {"label": "A", "svg_ids": ["p1", "p2"], "view": "anterior"}
	}`)

	assert.Equal(t, []string{"z_last", "_instructions", "a_first"}, keys(doc))

	e, ok := doc.Get("a_first")
	require.True(t, ok)
	assert.Equal(t, KindMuscle, e.Kind)
	assert.Equal(t, "A", e.Muscle.Label)
	assert.Equal(t, []string{"p1", "p2"}, e.Muscle.SvgIDs)
	assert.Equal(t, "anterior", e.Muscle.View)
	assert.True(t, e.Muscle.Complete())

	meta, ok := doc.Get("_instructions")
	require.True(t, ok)
	assert.Equal(t, KindMetadata, meta.Kind)
	assert.Equal(t, "fill these in", meta.Meta)
}

func TestDecodeJSONTracksPresence(t *testing.T) {
	doc := decodeJSONString(t, `{
		"missing": {"label": "Biceps", "svg_ids": []},
		"nulls": {"label": null, "svg_ids": null, "view": "anterior"},
		"wrong": {"label": 3, "svg_ids": "pathA", "view": ["x"]},
		"scalar": "not an object"
	}`)

	missing, _ := doc.Get("missing")
	assert.True(t, missing.Muscle.Has(FieldLabel))
	assert.True(t, missing.Muscle.Has(FieldSvgIDs))
	assert.False(t, missing.Muscle.Has(FieldView))
	assert.False(t, missing.Muscle.Complete())

	nulls, _ := doc.Get("nulls")
	assert.True(t, nulls.Muscle.Malformed(FieldLabel))
	assert.True(t, nulls.Muscle.Malformed(FieldSvgIDs))
	assert.False(t, nulls.Muscle.Malformed(FieldView))

	wrong, _ := doc.Get("wrong")
	for _, f := range RequiredFields {
		assert.True(t, wrong.Muscle.Has(f), f)
		assert.True(t, wrong.Muscle.Malformed(f), f)
	}

	scalar, _ := doc.Get("scalar")
	assert.False(t, scalar.Muscle.IsObject())
}

func TestDecodeJSONParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"empty", ``, 0},
		{"truncated", `{"m1": {"label": "A"`, 0},
		{"syntax error on line 3", "{\n  \"m1\": {},\n  oops\n}", 3},
		{"top level array", `[{"label": "A"}]`, 1},
		{"trailing data", `{} {}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.content), FormatJSON)
			assert.Nil(t, doc)

			var pe *types.ParseError
			require.ErrorAs(t, err, &pe)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, pe.Line)
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	content := `
_instructions: fill these in
m2:
  label: Triceps
  svg_ids: [pathB]
  view: posterior
m1:
  label: Biceps
  svg_ids:
    - pathA
  view: anterior
bad:
  label: ~
  svg_ids: pathC
`
	doc, err := Decode([]byte(content), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"_instructions", "m2", "m1", "bad"}, keys(doc))

	m1, _ := doc.Get("m1")
	assert.Equal(t, "Biceps", m1.Muscle.Label)
	assert.Equal(t, []string{"pathA"}, m1.Muscle.SvgIDs)
	assert.True(t, m1.Muscle.Complete())

	bad, _ := doc.Get("bad")
	assert.True(t, bad.Muscle.Malformed(FieldLabel))
	assert.True(t, bad.Muscle.Malformed(FieldSvgIDs))
	assert.False(t, bad.Muscle.Has(FieldView))
}

func TestDecodeYAMLParseErrors(t *testing.T) {
	for name, content := range map[string]string{
		"empty":      "",
		"sequence":   "- a\n- b\n",
		"bad indent": "m1:\n  label: A\n bad: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(content), FormatYAML)
			assert.True(t, types.IsParseError(err), "got %v", err)
		})
	}
}

func TestEncodeJSONLayout(t *testing.T) {
	doc := NewDocument()
	doc.SetMetadata("_total_paths", 2)
	doc.SetMuscle("m1", NewMuscleEntry("Biceps", []string{"pathA"}, "anterior"))

	data, err := Encode(doc, FormatJSON)
	require.NoError(t, err)

	want := `{
  "_total_paths": 2,
  "m1": {
    "label": "Biceps",
    "svg_ids": [
      "pathA"
    ],
    "view": "anterior"
  }
}
`
	assert.Equal(t, want, string(data))
}

func TestEncodeJSONEmptyDocument(t *testing.T) {
	data, err := Encode(NewDocument(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestEncodeKeepsOnlyPresentFields(t *testing.T) {
	doc := decodeJSONString(t, `{"m1": {"label": "Biceps", "svg_ids": []}}`)

	data, err := Encode(doc, FormatJSON)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"svg_ids": []`)
	assert.NotContains(t, string(data), `"view"`)
}

func TestWriteLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"mapping.json", "mapping.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			doc := NewDocument()
			doc.SetMetadata("_instructions", "note")
			doc.SetMuscle("m2", NewMuscleEntry("Triceps", []string{"pathB", "pathC"}, "posterior"))
			doc.SetMuscle("m1", NewMuscleEntry("Biceps", []string{"pathA"}, "anterior"))

			require.NoError(t, Write(path, doc))
			got, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, []string{"_instructions", "m2", "m1"}, keys(got))
			m2, _ := got.Get("m2")
			assert.Equal(t, []string{"pathB", "pathC"}, m2.Muscle.SvgIDs)
			assert.True(t, m2.Muscle.Complete())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, types.IsIOError(err))

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"m1": `), 0o644))
	_, err = Load(path)

	var pe *types.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("m.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("M.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("m.json"))
	assert.Equal(t, FormatJSON, FormatForPath("mapping"))
}
