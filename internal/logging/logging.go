// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging provides the console and null loggers shared by the
// muscle-mapper stages.
package logging

import (
	"fmt"
	"io"
	"sync"
)

// Logger receives progress and diagnostic messages.
type Logger interface {
	Verbose(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// ConsoleLogger writes messages to a writer, usually the command's stderr.
// Safe for concurrent use.
type ConsoleLogger struct {
	w       io.Writer
	verbose bool
	mu      sync.Mutex
}

// NewWriterLogger returns a logger writing to w. Verbose calls are dropped
// unless verbose is true.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{w: w, verbose: verbose}
}

// Verbose logs detail shown only in verbose mode.
func (l *ConsoleLogger) Verbose(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

// Info logs normal progress.
func (l *ConsoleLogger) Info(format string, args ...any) {
	l.write("", format, args)
}

// Error logs a failure.
func (l *ConsoleLogger) Error(format string, args ...any) {
	l.write("[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.w, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.w, prefix+format+"\n")
	}
}

// NullLogger discards everything. Useful in tests.
type NullLogger struct{}

// NewNullLogger returns a NullLogger.
func NewNullLogger() *NullLogger { return &NullLogger{} }

func (NullLogger) Verbose(string, ...any) {}
func (NullLogger) Info(string, ...any)    {}
func (NullLogger) Error(string, ...any)   {}
