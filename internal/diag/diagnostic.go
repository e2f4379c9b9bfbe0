package diag

import (
	"fmt"

	"github.com/martimartins/carbon-lang/internal/source"
)

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageParser      Stage = "parser"
	StageNames       Stage = "names"
	StageControlFlow Stage = "controlflow"
	StageInterpreter Stage = "interpreter"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  Span
	Label string
	Style string // "primary" or "secondary"
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Control-flow resolution errors
	CodeReturnOutsideFunction Code = "CONTROL_FLOW_RETURN_OUTSIDE_FUNCTION"
	CodeJumpOutsideLoop       Code = "CONTROL_FLOW_JUMP_OUTSIDE_LOOP"
	CodeReturnValueMismatch   Code = "CONTROL_FLOW_RETURN_VALUE_MISMATCH"
	CodeMultipleAutoReturns   Code = "CONTROL_FLOW_MULTIPLE_AUTO_RETURNS"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
}

// SpanFromLoc converts a source location to a span.
func SpanFromLoc(loc source.Loc) Span {
	return Span{
		Filename: loc.Filename,
		Line:     loc.Line,
		Column:   loc.Column,
	}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
//
// Diagnostic implements error so that passes can stop at the first problem
// and hand it back up the pipeline unchanged.
type Diagnostic struct {
	Stage        Stage
	Severity     Severity
	Code         Code
	Message      string
	Span         Span
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
}

// New returns an error diagnostic for the given stage, code and location.
func New(stage Stage, code Code, loc source.Loc, msg string) Diagnostic {
	d := Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Message:  msg,
		Span:     SpanFromLoc(loc),
	}
	if d.Span.IsValid() {
		d = d.WithPrimarySpan(d.Span, "")
	}
	return d
}

// Error returns the location-prefixed message.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return d.Span.String() + ": " + d.Message
	}
	return d.Message
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
