// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"fmt"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

const (
	// SentinelLabel marks a placeholder entry that still needs a muscle name.
	SentinelLabel = "FILL_IN_MUSCLE_NAME"

	// SentinelView marks a placeholder entry that still needs a view.
	SentinelView = "anterior_or_posterior"

	// DefaultPlaceholders is the number of placeholder entries in a template.
	DefaultPlaceholders = 5

	// Instructions is the annotator note stored in every template.
	Instructions = "Fill in the muscle information for each path ID below"

	KeyInstructions = "_instructions"
	KeyTotalPaths   = "_total_paths"
	KeyExample      = "_example"
)

// TemplateOptions controls template generation.
type TemplateOptions struct {
	// Placeholders is the number of shapes that receive a placeholder
	// entry. Zero emits none; a negative value emits one per shape.
	Placeholders int
}

// DefaultTemplateOptions returns the options used when none are configured.
func DefaultTemplateOptions() TemplateOptions {
	return TemplateOptions{Placeholders: DefaultPlaceholders}
}

// GenerateTemplate builds a starting mapping for annotators: metadata with
// the shape count and instructions, a worked example, and one placeholder
// per shape for the first opts.Placeholders shapes that have an identifier.
//
// The worked example is stored as metadata so its illustrative identifier
// is never checked against the source image.
func GenerateTemplate(shapes []types.ShapeRecord, opts TemplateOptions) *Document {
	doc := NewDocument()
	doc.SetMetadata(KeyInstructions, Instructions)
	doc.SetMetadata(KeyTotalPaths, len(shapes))
	doc.SetMetadata(KeyExample, entryValue(Entry{
		Kind:   KindMuscle,
		Muscle: NewMuscleEntry("Pectoralis Major", []string{"path2223"}, "anterior"),
	}))

	ids := types.ShapeIDs(shapes)
	n := opts.Placeholders
	if n < 0 || n > len(ids) {
		n = len(ids)
	}
	for i, id := range ids[:n] {
		doc.SetMuscle(fmt.Sprintf("muscle_%d", i+1),
			NewMuscleEntry(SentinelLabel, []string{id}, SentinelView))
	}
	return doc
}

// WriteTemplate generates a template for shapes and writes it to path. It
// returns the number of shapes seen, which is the amount of annotation
// work remaining, not the number of placeholders written.
func WriteTemplate(path string, shapes []types.ShapeRecord, opts TemplateOptions) (int, error) {
	if err := Write(path, GenerateTemplate(shapes, opts)); err != nil {
		return 0, err
	}
	return len(shapes), nil
}
