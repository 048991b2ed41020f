// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"fmt"
	"sort"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

// Issue is one finding about one muscle entry.
type Issue struct {
	// Key is the muscle key the finding is attributed to.
	Key string `json:"key" yaml:"key"`

	// Field is the entry field concerned, empty for whole-entry findings.
	Field Field `json:"field,omitempty" yaml:"field,omitempty"`

	// ShapeID is the offending identifier for unresolvable references.
	ShapeID string `json:"shape_id,omitempty" yaml:"shape_id,omitempty"`

	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string { return i.Message }

// Report is the outcome of validating a mapping against a source image.
type Report struct {
	// Errors are missing fields, unusable svg_ids, non-object entries and
	// unresolvable references.
	Errors []Issue `json:"errors" yaml:"errors"`

	// Warnings are informational smells: non-string labels or views, empty
	// svg_ids lists and entries still carrying template sentinels.
	Warnings []Issue `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Unmapped lists shape identifiers no entry references, sorted.
	Unmapped []string `json:"unmapped" yaml:"unmapped"`

	// Mapped is the number of distinct shape identifiers referenced.
	Mapped int `json:"mapped" yaml:"mapped"`

	// Total is the number of distinct shape identifiers in the image.
	Total int `json:"total" yaml:"total"`
}

// Valid reports whether the mapping has no errors. Unmapped shapes and
// warnings never affect the result.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateFile loads the mapping at path and validates it against shapes.
// A mapping that cannot be read or parsed fails before any check runs.
func ValidateFile(path string, shapes []types.ShapeRecord) (*Report, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Validate(doc, shapes), nil
}

// Validate checks every muscle entry of doc against the authoritative
// shapes. All entries are checked; findings accumulate.
func Validate(doc *Document, shapes []types.ShapeRecord) *Report {
	known := make(map[string]bool, len(shapes))
	for _, id := range types.ShapeIDs(shapes) {
		known[id] = true
	}
	mapped := make(map[string]bool)
	r := &Report{Errors: []Issue{}, Unmapped: []string{}}

	for _, e := range doc.Muscles() {
		m := e.Muscle
		if m == nil || !m.IsObject() {
			r.addError(e.Key, "", "", fmt.Sprintf("%s: entry must be an object", e.Key))
			continue
		}

		for _, f := range RequiredFields {
			switch {
			case !m.Has(f):
				r.addError(e.Key, f, "", fmt.Sprintf("%s: missing '%s' field", e.Key, f))
			case m.Malformed(f) && f == FieldSvgIDs:
				// References cannot be resolved without a list of strings.
				r.addError(e.Key, f, "", fmt.Sprintf("%s: '%s' must be a list of strings", e.Key, f))
			case m.Malformed(f):
				r.addWarning(e.Key, f, fmt.Sprintf("%s: '%s' should be a string", e.Key, f))
			}
		}

		if m.Has(FieldSvgIDs) && !m.Malformed(FieldSvgIDs) {
			if len(m.SvgIDs) == 0 {
				r.addWarning(e.Key, FieldSvgIDs, fmt.Sprintf("%s: 'svg_ids' is empty", e.Key))
			}
			for _, id := range m.SvgIDs {
				if !known[id] {
					r.addError(e.Key, FieldSvgIDs, id, fmt.Sprintf("%s: path '%s' not found in SVG", e.Key, id))
					continue
				}
				mapped[id] = true
			}
		}

		if m.Has(FieldLabel) && m.Label == SentinelLabel {
			r.addWarning(e.Key, FieldLabel, fmt.Sprintf("%s: label is still %s", e.Key, SentinelLabel))
		}
		if m.Has(FieldView) && m.View == SentinelView {
			r.addWarning(e.Key, FieldView, fmt.Sprintf("%s: view is still %s", e.Key, SentinelView))
		}
	}

	for id := range known {
		if !mapped[id] {
			r.Unmapped = append(r.Unmapped, id)
		}
	}
	sort.Strings(r.Unmapped)
	r.Mapped = len(mapped)
	r.Total = len(known)
	return r
}

func (r *Report) addError(key string, f Field, shapeID, msg string) {
	r.Errors = append(r.Errors, Issue{Key: key, Field: f, ShapeID: shapeID, Message: msg})
}

func (r *Report) addWarning(key string, f Field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Key: key, Field: f, Message: msg})
}
