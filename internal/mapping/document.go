// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapping holds the curated muscle mapping: the document model,
// its JSON and YAML codecs, the template generator, and the validator that
// checks a completed mapping against the shapes of the source image.
package mapping

import "strings"

// MetadataPrefix marks keys that carry comments (instructions, counts)
// rather than muscle entries.
const MetadataPrefix = "_"

// Field names a required field of a muscle entry.
type Field string

const (
	FieldLabel  Field = "label"
	FieldSvgIDs Field = "svg_ids"
	FieldView   Field = "view"
)

// RequiredFields lists the fields every muscle entry must carry, in
// report order.
var RequiredFields = []Field{FieldLabel, FieldSvgIDs, FieldView}

// EntryKind discriminates the two variants of a document entry.
type EntryKind int

const (
	KindMuscle EntryKind = iota
	KindMetadata
)

func (k EntryKind) String() string {
	if k == KindMetadata {
		return "metadata"
	}
	return "muscle"
}

// Entry is one keyed value of a mapping document: either a metadata value
// or a muscle entry. Kind is decided once, when the entry is created, and
// is never re-derived from the key.
type Entry struct {
	Key    string
	Kind   EntryKind
	Meta   any          // set for KindMetadata
	Muscle *MuscleEntry // set for KindMuscle
}

// MuscleEntry is one curated annotation. Presence of each field is tracked
// apart from its value so that a missing field and an empty one differ.
type MuscleEntry struct {
	Label  string
	SvgIDs []string
	View   string

	present   map[Field]bool
	malformed map[Field]bool
	notObject bool
}

// NewMuscleEntry returns a complete entry with every field present.
func NewMuscleEntry(label string, svgIDs []string, view string) *MuscleEntry {
	if svgIDs == nil {
		svgIDs = []string{}
	}
	return &MuscleEntry{
		Label:  label,
		SvgIDs: svgIDs,
		View:   view,
		present: map[Field]bool{
			FieldLabel:  true,
			FieldSvgIDs: true,
			FieldView:   true,
		},
	}
}

func newDecodedEntry() *MuscleEntry {
	return &MuscleEntry{present: map[Field]bool{}, malformed: map[Field]bool{}}
}

// Has reports whether field was given, whatever its value.
func (m *MuscleEntry) Has(f Field) bool { return m.present[f] }

// Malformed reports whether field was given with the wrong type.
func (m *MuscleEntry) Malformed(f Field) bool { return m.malformed[f] }

// IsObject reports whether the entry was decoded from an object value.
func (m *MuscleEntry) IsObject() bool { return !m.notObject }

// Complete reports whether every required field is present and well typed.
func (m *MuscleEntry) Complete() bool {
	if m.notObject {
		return false
	}
	for _, f := range RequiredFields {
		if !m.present[f] || m.malformed[f] {
			return false
		}
	}
	return true
}

// Document is an ordered mapping from key to Entry. Insertion order is
// kept so templates stay legible after a round trip.
type Document struct {
	entries []Entry
	index   map[string]int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{index: map[string]int{}}
}

// IsMetadataKey reports whether key uses the metadata prefix.
func IsMetadataKey(key string) bool {
	return strings.HasPrefix(key, MetadataPrefix)
}

// SetMetadata stores a metadata value under key.
func (d *Document) SetMetadata(key string, value any) {
	d.set(Entry{Key: key, Kind: KindMetadata, Meta: value})
}

// SetMuscle stores a muscle entry under key.
func (d *Document) SetMuscle(key string, m *MuscleEntry) {
	d.set(Entry{Key: key, Kind: KindMuscle, Muscle: m})
}

// set replaces an existing key in place or appends a new one.
func (d *Document) set(e Entry) {
	if i, ok := d.index[e.Key]; ok {
		d.entries[i] = e
		return
	}
	d.index[e.Key] = len(d.entries)
	d.entries = append(d.entries, e)
}

// Get returns the entry stored under key.
func (d *Document) Get(key string) (Entry, bool) {
	i, ok := d.index[key]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Entries returns all entries in document order.
func (d *Document) Entries() []Entry {
	return d.entries
}

// Muscles returns the muscle entries in document order.
func (d *Document) Muscles() []Entry {
	var out []Entry
	for _, e := range d.entries {
		if e.Kind == KindMuscle {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries, metadata included.
func (d *Document) Len() int { return len(d.entries) }
