// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/muscle-mapper/internal/logging"
	"github.com/pdiddy/muscle-mapper/internal/shapes"
	"github.com/pdiddy/muscle-mapper/pkg/types"
)

func sampleDocument() *shapes.Document {
	return &shapes.Document{
		Path:       "muscles.svg",
		ViewBox:    "0 0 100 200",
		HasViewBox: true,
		Shapes: []types.ShapeRecord{
			{ID: "pathA", D: "M 0,0 L 50,0 L 50,200 L 0,200 Z", Style: "fill:#f39079"},
			{ID: "pathB", D: "M 1,1 L 2,2 Z", Style: "fill:#F39079;stroke:none"},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	s := types.ShapeRecord{ID: "pathA", D: "M 0,0 L 1,1 Z", Style: "fill:#f39079"}

	got := string(RenderSVG("0 0 100 200", true, s))

	want := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 200">
    <rect width="100%" height="100%" fill="white"/>
    <path id="pathA" d="M 0,0 L 1,1 Z" style="fill:#f39079"/>
</svg>`
	assert.Equal(t, want, got)
}

func TestRenderSVGWithoutViewBox(t *testing.T) {
	got := string(RenderSVG("", false, types.ShapeRecord{ID: "p", D: "M 0,0", Style: "fill:red"}))

	assert.Contains(t, got, `<svg xmlns="http://www.w3.org/2000/svg">`)
	assert.NotContains(t, got, "viewBox")
}

func TestRenderSVGEscapesAttributes(t *testing.T) {
	got := string(RenderSVG("0 0 1 1", true, types.ShapeRecord{ID: `a&b`, D: `M 0,0`, Style: `font-family:"Sans"<x>`}))

	assert.Contains(t, got, `id="a&amp;b"`)
	assert.Contains(t, got, `style="font-family:&#34;Sans&#34;&lt;x&gt;"`)
}

func TestExportWritesOneFilePerShape(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "individual_muscles")
	doc := sampleDocument()
	var out strings.Builder

	result, err := (&Exporter{Dir: dir, Log: logging.NewWriterLogger(&out, false)}).Export(doc)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	assert.False(t, result.HasFailures())
	assert.Empty(t, out.String())

	for _, s := range doc.Shapes {
		data, err := os.ReadFile(filepath.Join(dir, s.ID+".svg"))
		require.NoError(t, err)
		assert.Equal(t, string(RenderSVG(doc.ViewBox, true, s)), string(data))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestExportOverwritesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "pathA.svg")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	_, err := (&Exporter{Dir: dir}).Export(sampleDocument())
	require.NoError(t, err)

	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestExportRecordsUnusableIDs(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()
	doc.Shapes = append(doc.Shapes,
		types.ShapeRecord{ID: "", D: "M 0,0"},
		types.ShapeRecord{ID: "../escape", D: "M 0,0"},
		types.ShapeRecord{ID: "..", D: "M 0,0"},
	)
	var out strings.Builder

	result, err := (&Exporter{Dir: dir, Log: logging.NewWriterLogger(&out, false)}).Export(doc)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	assert.Equal(t, 3, result.Failed())
	assert.Equal(t, 5, result.Total())
	assert.True(t, result.HasFailures())
	assert.Equal(t, "", result.Failures[0].ShapeID)
	assert.Equal(t, "../escape", result.Failures[1].ShapeID)
	assert.Contains(t, out.String(), "[ERROR] failed <no id>: shape has no id\n")
	assert.Contains(t, out.String(), "[ERROR] failed ../escape: ")

	_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "escape.svg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := (&Exporter{Dir: filepath.Join(blocker, "out")}).Export(sampleDocument())

	require.Error(t, err)
	assert.True(t, types.IsIOError(err))
}

func TestExportEmptyDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	result, err := (&Exporter{Dir: dir}).Export(&shapes.Document{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExportWithPNGPreview(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()
	doc.Shapes = doc.Shapes[:1]

	result, err := (&Exporter{Dir: dir, PNG: true, PNGWidth: 50}).Export(doc)
	require.NoError(t, err)
	require.False(t, result.HasFailures())

	f, err := os.Open(filepath.Join(dir, "pathA.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
	assertColorNear(t, color.RGBA{R: 0xf3, G: 0x90, B: 0x79, A: 0xff}, img.At(10, 50))
	assertColorNear(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.At(40, 50))
}

func assertColorNear(t *testing.T, want color.RGBA, got color.Color) {
	t.Helper()
	c := color.RGBAModel.Convert(got).(color.RGBA)
	assert.InDelta(t, want.R, c.R, 2, "red")
	assert.InDelta(t, want.G, c.G, 2, "green")
	assert.InDelta(t, want.B, c.B, 2, "blue")
	assert.InDelta(t, want.A, c.A, 2, "alpha")
}

func TestExportPNGWithoutViewBoxFails(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()
	doc.HasViewBox = false
	doc.ViewBox = ""

	result, err := (&Exporter{Dir: dir, PNG: true}).Export(doc)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Failed())
	// The SVG is still written before the preview fails.
	_, statErr := os.Stat(filepath.Join(dir, "pathA.svg"))
	assert.NoError(t, statErr)
}

func TestParseViewBox(t *testing.T) {
	tests := []struct {
		in      string
		w, h    float64
		wantErr bool
	}{
		{"0 0 100 200", 100, 200, false},
		{"0,0,744.09,1052.36", 744.09, 1052.36, false},
		{" -10  5\t20 40 ", 20, 40, false},
		{"0 0 100", 0, 0, true},
		{"0 0 0 10", 0, 0, true},
		{"0 0 a 10", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseViewBox(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.w, w, 1e-9)
			assert.InDelta(t, tt.h, h, 1e-9)
		})
	}
}
