// Package output provides user-facing logging for the land workflow.
package output

import (
	"fmt"
	"io"
	"os"
)

// Splog provides structured logging and output
type Splog struct {
	writer  io.Writer
	verbose bool
}

// NewSplog creates a new splog instance writing to stdout
func NewSplog() *Splog {
	return &Splog{
		writer: os.Stdout,
	}
}

// NewSplogWithWriter creates a splog writing to the given writer,
// used by tests to capture output
func NewSplogWithWriter(w io.Writer) *Splog {
	return &Splog{writer: w}
}

// SetVerbose enables step narration
func (s *Splog) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, format+"\n", args...)
}

// Step narrates an intended action before it executes.
// Only shown in verbose mode.
func (s *Splog) Step(format string, args ...interface{}) {
	if !s.verbose {
		return
	}
	fmt.Fprintf(s.writer, ColorDim("→ ")+format+"\n", args...)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, ColorWarn("⚠")+"  "+format+"\n", args...)
}

// Success writes a success message
func (s *Splog) Success(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, ColorSuccess("✓")+" "+format+"\n", args...)
}

// Tip writes a tip message
func (s *Splog) Tip(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, "💡 "+format+"\n", args...)
}

// Newline writes a newline
func (s *Splog) Newline() {
	fmt.Fprintln(s.writer)
}
