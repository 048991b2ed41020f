// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// ParseError reports a source image or mapping document that is not
// well-formed. Operations that return it produce no partial results.
type ParseError struct {
	Path string // file being parsed, empty for in-memory input
	Line int    // 1-based line, 0 when unknown
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	location := e.Path
	if location == "" {
		location = "<input>"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}
	return fmt.Sprintf("parse error in %s: %s", location, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError wraps a decoder error, lifting the line number out of
// xml.SyntaxError when present.
func NewParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Msg: err.Error(), Err: err}
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Line = syntaxErr.Line
		pe.Msg = syntaxErr.Msg
	}
	return pe
}

// IOError reports a filesystem failure (missing file, permission denied,
// failed write). It is distinct from ParseError so callers can tell bad
// input from a bad environment.
type IOError struct {
	Op   string // "open", "read", "write", "mkdir"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsIOError reports whether err is or wraps an *IOError.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}
