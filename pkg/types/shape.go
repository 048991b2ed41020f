// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ShapeRecord is one drawable path element selected from a source image.
// D and Style are kept byte-for-byte as they appear in the document.
type ShapeRecord struct {
	// ID is the element's id attribute. It may be empty.
	ID string `json:"id" yaml:"id"`

	// D is the path geometry (the d attribute).
	D string `json:"d" yaml:"d"`

	// Style is the raw style attribute.
	Style string `json:"style" yaml:"style"`
}

// ShapeIDs returns the non-empty identifiers of shapes in document order.
func ShapeIDs(shapes []ShapeRecord) []string {
	ids := make([]string, 0, len(shapes))
	for _, s := range shapes {
		if s.ID != "" {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
