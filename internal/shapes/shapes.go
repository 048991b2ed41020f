// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package shapes extracts muscle shapes from an SVG document. A shape is a
// path element whose style carries the configured signature color; the
// extractor is the single source of truth for which shapes exist, and every
// other stage re-reads the source image through it.
package shapes

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

// Document is the result of one extraction: the selected shapes in
// document order plus the root coordinate frame.
type Document struct {
	// Path is the source file, empty for reader input.
	Path string

	// ViewBox is the root element's viewBox attribute, verbatim.
	ViewBox string

	// HasViewBox is false when the root element has no viewBox attribute.
	HasViewBox bool

	Shapes []types.ShapeRecord
}

// IDs returns the non-empty shape identifiers in document order.
func (d *Document) IDs() []string {
	return types.ShapeIDs(d.Shapes)
}

// Extractor selects muscle shapes by a fixed color signature.
type Extractor struct {
	signature string
	mode      types.MatchMode
}

// NewExtractor returns an extractor for signature. An empty mode selects
// MatchFill.
func NewExtractor(signature string, mode types.MatchMode) (*Extractor, error) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return nil, errors.New("shape signature must not be empty")
	}
	switch mode {
	case "":
		mode = types.MatchFill
	case types.MatchFill, types.MatchSubstring:
	default:
		return nil, fmt.Errorf("unsupported match mode %q: use fill or substring", mode)
	}
	return &Extractor{signature: signature, mode: mode}, nil
}

// Signature returns the configured color signature.
func (e *Extractor) Signature() string { return e.signature }

// Mode returns the configured selection mode.
func (e *Extractor) Mode() types.MatchMode { return e.mode }

// Extract parses the SVG at path and returns the matching shapes.
func (e *Extractor) Extract(path string) ([]types.ShapeRecord, error) {
	doc, err := e.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Shapes, nil
}

// ExtractFile parses the SVG at path and returns the matching shapes
// together with the root viewBox.
func (e *Extractor) ExtractFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	doc, err := e.ExtractReader(f)
	if err != nil {
		var pe *types.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// ExtractReader parses an SVG stream. A document that is not well-formed
// XML yields a *types.ParseError and no shapes.
func (e *Extractor) ExtractReader(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	seenRoot := false
	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, types.NewParseError("", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !seenRoot {
			seenRoot = true
			doc.ViewBox, doc.HasViewBox = attr(se, "viewBox")
		}
		if se.Name.Local != "path" {
			continue
		}
		style, _ := attr(se, "style")
		if !e.Matches(style) {
			continue
		}
		id, _ := attr(se, "id")
		d, _ := attr(se, "d")
		doc.Shapes = append(doc.Shapes, types.ShapeRecord{ID: id, D: d, Style: style})
	}

	if !seenRoot {
		return nil, &types.ParseError{Msg: "document has no root element"}
	}
	return doc, nil
}

// Matches reports whether a style attribute selects its path as a muscle.
// In fill mode the trimmed fill value must equal the signature exactly, so
// every fill match is also a substring match.
func (e *Extractor) Matches(style string) bool {
	if e.mode == types.MatchSubstring {
		return strings.Contains(style, e.signature)
	}
	fill, ok := ParseStyle(style).Get("fill")
	return ok && fill == e.signature
}

// attr returns the value of the un-namespaced attribute name.
func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
