package frontend

import "strings"

// ErrorKind classifies an Error by cause. It doesn't affect
// propagation (all kinds are collected the same way); it's there so callers
// can filter/count without string-matching messages.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	DuplicateModifierError
	ConflictingModifierError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case DuplicateModifierError:
		return "duplicate modifier"
	case ConflictingModifierError:
		return "conflicting modifiers"
	default:
		return "error"
	}
}

// Error is a single structured diagnostic: a position plus a one-line
// message. Error never causes unwinding; it is only ever appended to an
// ErrorList.
type Error struct {
	Pos     Position
	Kind    ErrorKind
	Message string
}

func (e Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// ErrorList is an ordered, append-only collection of Errors. The parser
// writes to it and never throws; consumers read it after Parse returns.
type ErrorList struct {
	errs []Error
}

// Add appends a new Error built from pos/kind/message to the list.
func (l *ErrorList) Add(pos Position, kind ErrorKind, message string) {
	l.errs = append(l.errs, Error{Pos: pos, Kind: kind, Message: message})
}

// Errors returns the errors in emission order. The returned slice is owned
// by the list; callers must not mutate it.
func (l *ErrorList) Errors() []Error {
	return l.errs
}

// Empty reports whether no errors have been recorded.
func (l *ErrorList) Empty() bool {
	return len(l.errs) == 0
}

// Len returns the number of recorded errors.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Error implements the error interface by joining every message, so an
// ErrorList can be returned directly from functions with an `error` result
// when every error matters, not just the first one.
func (l *ErrorList) Error() string {
	msgs := make([]string, len(l.errs))
	for i, e := range l.errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}
