// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package shapes

import "strings"

// Declaration is one name:value pair of an inline style.
type Declaration struct {
	Name  string
	Value string
}

// Style is a parsed inline style attribute in declaration order.
type Style []Declaration

// ParseStyle splits a style attribute into declarations. Names are
// lower-cased, values trimmed; malformed pairs are dropped.
func ParseStyle(s string) Style {
	var style Style
	for _, pair := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		style = append(style, Declaration{Name: name, Value: value})
	}
	return style
}

// Get returns the value of the last declaration named name, matching
// the CSS cascade within one attribute.
func (s Style) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Name == name {
			return s[i].Value, true
		}
	}
	return "", false
}
