// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes every extracted shape to its own standalone SVG
// document, drawn in the source image's coordinate frame on a white
// background, for visual inspection.
//
// Export is best-effort: each shape is attempted, failures are collected
// in the Result, and files written before a failure stay on disk.
package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/muscle-mapper/internal/logging"
	"github.com/pdiddy/muscle-mapper/internal/shapes"
	"github.com/pdiddy/muscle-mapper/pkg/types"
)

// DefaultPNGWidth is the preview width used when none is configured.
const DefaultPNGWidth = 512

// Exporter writes per-shape documents into Dir.
type Exporter struct {
	Dir string

	// PNG enables a raster preview next to each SVG.
	PNG bool

	// PNGWidth is the preview width in pixels. Zero uses DefaultPNGWidth.
	PNGWidth int

	// Log receives per-file detail and per-shape failures. Nil discards them.
	Log logging.Logger
}

// Failure records one shape that could not be exported.
type Failure struct {
	ShapeID string
	Err     error
}

// Result holds the outcome of an export run.
type Result struct {
	Written  int
	Failures []Failure
}

// Failed returns the number of shapes that could not be exported.
func (r Result) Failed() int { return len(r.Failures) }

// Total returns the number of shapes processed.
func (r Result) Total() int { return r.Written + r.Failed() }

// HasFailures reports whether any shape failed.
func (r Result) HasFailures() bool { return len(r.Failures) > 0 }

// NewExporter returns an exporter for cfg.
func NewExporter(cfg types.ExportConfig, log logging.Logger) *Exporter {
	return &Exporter{Dir: cfg.Dir, PNG: cfg.PNG, PNGWidth: cfg.PNGWidth, Log: log}
}

// Export writes <id>.svg (and <id>.png when enabled) for every shape in
// doc. The directory is created if absent; existing files are overwritten.
// An error is returned only when the directory cannot be created; per-shape
// problems are logged and reported in the Result.
func (e *Exporter) Export(doc *shapes.Document) (Result, error) {
	log := e.Log
	if log == nil {
		log = logging.NewNullLogger()
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return Result{}, &types.IOError{Op: "mkdir", Path: e.Dir, Err: err}
	}

	var result Result
	for _, s := range doc.Shapes {
		if err := e.exportShape(doc, s, log); err != nil {
			log.Error("failed %s: %v", displayID(s.ID), err)
			result.Failures = append(result.Failures, Failure{ShapeID: s.ID, Err: err})
			continue
		}
		result.Written++
	}
	return result, nil
}

func (e *Exporter) exportShape(doc *shapes.Document, s types.ShapeRecord, log logging.Logger) error {
	if err := checkFileName(s.ID); err != nil {
		return err
	}

	svgPath := filepath.Join(e.Dir, s.ID+".svg")
	if err := os.WriteFile(svgPath, RenderSVG(doc.ViewBox, doc.HasViewBox, s), 0o644); err != nil {
		return &types.IOError{Op: "write", Path: svgPath, Err: err}
	}
	log.Verbose("wrote %s", svgPath)

	if !e.PNG {
		return nil
	}
	width := e.PNGWidth
	if width <= 0 {
		width = DefaultPNGWidth
	}
	pngPath := filepath.Join(e.Dir, s.ID+".png")
	if err := writePNG(pngPath, doc.ViewBox, doc.HasViewBox, s, width); err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	log.Verbose("wrote %s", pngPath)
	return nil
}

// RenderSVG returns the standalone document for one shape. The viewBox is
// copied verbatim and omitted when the source has none.
func RenderSVG(viewBox string, hasViewBox bool, s types.ShapeRecord) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if hasViewBox {
		fmt.Fprintf(&b, ` viewBox="%s"`, escapeAttr(viewBox))
	}
	b.WriteString(">\n")
	b.WriteString(`    <rect width="100%" height="100%" fill="white"/>` + "\n")
	fmt.Fprintf(&b, `    <path id="%s" d="%s" style="%s"/>`+"\n",
		escapeAttr(s.ID), escapeAttr(s.D), escapeAttr(s.Style))
	b.WriteString("</svg>")
	return b.Bytes()
}

func escapeAttr(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// checkFileName rejects identifiers that cannot name a file inside the
// export directory.
func checkFileName(id string) error {
	switch {
	case id == "":
		return errors.New("shape has no id")
	case id == "." || id == "..":
		return fmt.Errorf("id %q is not a valid file name", id)
	case strings.ContainsAny(id, `/\`+"\x00"):
		return fmt.Errorf("id %q contains a path separator", id)
	}
	return nil
}

func displayID(id string) string {
	if id == "" {
		return "<no id>"
	}
	return id
}
