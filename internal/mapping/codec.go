// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

// Format is the serialization of a mapping document on disk.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension. Anything other
// than .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the mapping document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: path, Err: err}
	}
	doc, err := Decode(data, FormatForPath(path))
	if err != nil {
		var pe *types.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Write encodes doc in the format implied by path and writes it, replacing
// any existing file.
func Write(path string, doc *Document) error {
	data, err := Encode(doc, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("encoding mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Decode parses a mapping document. The top level must be an object;
// keys with the metadata prefix become metadata entries, every other key a
// muscle entry. Field-level problems inside an entry are recorded on the
// entry for the validator rather than failing the decode.
func Decode(data []byte, format Format) (*Document, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, &types.ParseError{Msg: "empty mapping document"}
	}
	if err != nil {
		return nil, jsonParseError(data, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &types.ParseError{Line: 1, Msg: "mapping document must be a JSON object"}
	}

	doc := NewDocument()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, jsonParseError(data, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &types.ParseError{Msg: fmt.Sprintf("unexpected token %v", tok)}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, jsonParseError(data, err)
		}
		if IsMetadataKey(key) {
			var v any
			d := json.NewDecoder(bytes.NewReader(raw))
			d.UseNumber()
			if err := d.Decode(&v); err != nil {
				return nil, jsonParseError(data, err)
			}
			doc.SetMetadata(key, v)
			continue
		}
		doc.SetMuscle(key, muscleFromJSON(raw))
	}

	if _, err := dec.Token(); err != nil {
		return nil, jsonParseError(data, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &types.ParseError{Msg: "unexpected data after the top-level object"}
	}
	return doc, nil
}

func muscleFromJSON(raw json.RawMessage) *MuscleEntry {
	m := newDecodedEntry()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		m.notObject = true
		return m
	}

	if v, ok := fields[string(FieldLabel)]; ok {
		m.present[FieldLabel] = true
		m.Label, m.malformed[FieldLabel] = jsonString(v)
	}
	if v, ok := fields[string(FieldView)]; ok {
		m.present[FieldView] = true
		m.View, m.malformed[FieldView] = jsonString(v)
	}
	if v, ok := fields[string(FieldSvgIDs)]; ok {
		m.present[FieldSvgIDs] = true
		var ids *[]string
		if err := json.Unmarshal(v, &ids); err != nil || ids == nil {
			m.malformed[FieldSvgIDs] = true
		} else {
			m.SvgIDs = *ids
		}
	}
	return m
}

// jsonString decodes a JSON string, reporting malformed for any other type.
func jsonString(raw json.RawMessage) (string, bool) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", true
	}
	return *s, false
}

func jsonParseError(data []byte, err error) *types.ParseError {
	pe := &types.ParseError{Msg: err.Error(), Err: err}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Line = lineAt(data, syntaxErr.Offset)
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		pe.Msg = "unexpected end of mapping document"
	}
	return pe
}

// lineAt returns the 1-based line containing byte offset.
func lineAt(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

func decodeYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &types.ParseError{Msg: err.Error(), Err: err}
	}
	top := &root
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = top.Content[0]
	}
	if top.Kind != yaml.MappingNode {
		if top.Kind == 0 || top.Kind == yaml.DocumentNode {
			return nil, &types.ParseError{Msg: "empty mapping document"}
		}
		return nil, &types.ParseError{Line: top.Line, Msg: "mapping document must be a YAML mapping"}
	}

	doc := NewDocument()
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value
		value := resolveAlias(top.Content[i+1])
		if IsMetadataKey(key) {
			var v any
			if err := value.Decode(&v); err != nil {
				return nil, &types.ParseError{Line: value.Line, Msg: err.Error(), Err: err}
			}
			doc.SetMetadata(key, v)
			continue
		}
		doc.SetMuscle(key, muscleFromYAML(value))
	}
	return doc, nil
}

func muscleFromYAML(n *yaml.Node) *MuscleEntry {
	m := newDecodedEntry()
	if n.Kind != yaml.MappingNode {
		m.notObject = true
		return m
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		field := Field(n.Content[i].Value)
		value := resolveAlias(n.Content[i+1])
		switch field {
		case FieldLabel:
			m.present[field] = true
			m.Label, m.malformed[field] = yamlString(value)
		case FieldView:
			m.present[field] = true
			m.View, m.malformed[field] = yamlString(value)
		case FieldSvgIDs:
			m.present[field] = true
			m.SvgIDs, m.malformed[field] = yamlStrings(value)
		}
	}
	return m
}

// yamlString accepts only string scalars, so an unquoted number or null is
// malformed exactly as it is in JSON.
func yamlString(n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", true
	}
	return n.Value, false
}

func yamlStrings(n *yaml.Node) ([]string, bool) {
	if n.Kind != yaml.SequenceNode {
		return nil, true
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		s, bad := yamlString(resolveAlias(item))
		if bad {
			return nil, true
		}
		out = append(out, s)
	}
	return out, false
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// Encode serializes doc with two-space indentation, keys in document order.
func Encode(doc *Document, format Format) ([]byte, error) {
	if format == FormatYAML {
		return encodeYAML(doc)
	}
	return encodeJSON(doc)
}

func encodeJSON(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if doc.Len() == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}
	buf.WriteString("{\n")
	for i, e := range doc.Entries() {
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.MarshalIndent(entryValue(e), "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.Key, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < doc.Len()-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func encodeYAML(doc *Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range doc.Entries() {
		var value yaml.Node
		if err := value.Encode(entryValue(e)); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.Key, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// muscleValue is the on-disk shape of a complete muscle entry. Field order
// here is the output order.
type muscleValue struct {
	Label  *string   `json:"label,omitempty" yaml:"label,omitempty"`
	SvgIDs *[]string `json:"svg_ids,omitempty" yaml:"svg_ids,omitempty"`
	View   *string   `json:"view,omitempty" yaml:"view,omitempty"`
}

// entryValue returns the value to serialize for e. Muscle entries keep only
// the fields that were present and well typed.
func entryValue(e Entry) any {
	if e.Kind == KindMetadata {
		return e.Meta
	}
	m := e.Muscle
	if m == nil || m.notObject {
		return map[string]any{}
	}
	var v muscleValue
	if m.Has(FieldLabel) && !m.Malformed(FieldLabel) {
		v.Label = &m.Label
	}
	if m.Has(FieldSvgIDs) && !m.Malformed(FieldSvgIDs) {
		ids := m.SvgIDs
		if ids == nil {
			ids = []string{}
		}
		v.SvgIDs = &ids
	}
	if m.Has(FieldView) && !m.Malformed(FieldView) {
		v.View = &m.View
	}
	return v
}
