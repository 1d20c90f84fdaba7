// Package frontend holds the pieces of the compiler front end shared by the
// AST, lexer and parser packages: source handles, positions, the identifier
// family and the absolute identifier table.
package frontend

import "fmt"

// sourceHandle is the shared state behind a Source value. Source is kept
// cheap to copy by boxing the mutable bits behind a pointer.
type sourceHandle struct {
	name string
}

// Source names a single parsed unit (typically a file). It is a handle:
// copying a Source copies a pointer, not file contents.
type Source struct {
	h *sourceHandle
}

// NewSource returns a Source identified by name. The name is surfaced in
// error messages and positions; it need not be a real file path.
func NewSource(name string) Source {
	return Source{h: &sourceHandle{name: name}}
}

// Name returns the source's display name, or "" for the zero Source.
func (s Source) Name() string {
	if s.h == nil {
		return ""
	}
	return s.h.name
}

// Equal reports whether two Source values name the same underlying handle.
func (s Source) Equal(other Source) bool {
	return s.h == other.h
}

func (s Source) String() string { return s.Name() }

// Position is a 1-based (line, column) cursor within a Source. Columns count
// one per rune as the lexer produces them; a tab always advances one column,
// and lexer.Options.TabWidth does not change the columns the lexer reports.
type Position struct {
	Source Source
	Line   uint32
	Column uint32
}

// NewPosition builds a Position, defaulting Line/Column to 1 if zero so a
// caller can't accidentally construct the invalid (0,0) position.
func NewPosition(source Source, line, column uint32) Position {
	if line == 0 {
		line = 1
	}
	if column == 0 {
		column = 1
	}
	return Position{Source: source, Line: line, Column: column}
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Source.Name(), p.Line, p.Column)
}

// Before reports whether p occurs strictly before other in the same source
// (line-major, then column). Positions from different sources compare by
// name only, which is good enough for stable sorting in tests.
func (p Position) Before(other Position) bool {
	if p.Source.Name() != other.Source.Name() {
		return p.Source.Name() < other.Source.Name()
	}
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}
