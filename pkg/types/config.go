// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchMode selects how the extractor decides that a path is a muscle shape.
type MatchMode string

const (
	// MatchFill parses the style attribute into declarations and compares
	// the fill value against the signature.
	MatchFill MatchMode = "fill"

	// MatchSubstring selects a path when its raw style string contains the
	// signature. Legacy source documents rely on this behavior.
	MatchSubstring MatchMode = "substring"
)

// DefaultSignature is the fill color of muscle shapes in the reference
// anatomy image (Muscles_front_and_back.svg).
const DefaultSignature = "#f39079"

// ExtractConfig holds settings for the extract stage.
type ExtractConfig struct {
	// Output is the path-ID report file (default "muscle_path_ids.txt").
	Output string `json:"output" yaml:"output"`
}

// TemplateConfig holds settings for the template stage.
type TemplateConfig struct {
	// Output is the mapping template file (default "muscle_mapping_template.json").
	Output string `json:"output" yaml:"output"`

	// Placeholders is the number of shapes that receive a placeholder entry.
	// Zero emits none; a negative value emits one per shape.
	Placeholders int `json:"placeholders" yaml:"placeholders"`
}

// ExportConfig holds settings for the per-shape export stage.
type ExportConfig struct {
	// Dir receives one SVG per shape (default "individual_muscles").
	Dir string `json:"dir" yaml:"dir"`

	// PNG enables a raster preview next to each SVG.
	PNG bool `json:"png" yaml:"png"`

	// PNGWidth is the preview width in pixels (default 512).
	PNGWidth int `json:"png_width" yaml:"png_width"`
}

// AtlasConfig holds settings for the atlas store.
type AtlasConfig struct {
	// Dir contains atlas.db and the export files (default "atlas").
	Dir string `json:"dir" yaml:"dir"`
}

// MapperConfig groups every stage configuration.
type MapperConfig struct {
	// SVG is the source vector image.
	SVG string `json:"svg" yaml:"svg"`

	// Signature is the fill color that marks muscle shapes.
	Signature string `json:"signature" yaml:"signature"`

	// Match selects the selection predicate: fill or substring.
	Match MatchMode `json:"match" yaml:"match"`

	Verbose bool `json:"verbose" yaml:"verbose"`

	Extract  ExtractConfig  `json:"extract" yaml:"extract"`
	Template TemplateConfig `json:"template" yaml:"template"`
	Export   ExportConfig   `json:"export" yaml:"export"`
	Atlas    AtlasConfig    `json:"atlas" yaml:"atlas"`
}
