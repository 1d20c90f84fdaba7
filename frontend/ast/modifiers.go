// Package ast defines the abstract syntax tree produced by the parser: a
// tagged-variant tree of definitions, expressions, patterns, type
// expressions and literals, each carrying its own frontend.Position.
//
// Each node family (Definition, Variable, Function, TypeVariable,
// TypeFunction, Datatype, Constructor, Expression, Pattern, LiteralValue,
// TypeExpression) is modelled as a small interface plus one concrete struct
// per variant, matched with a type switch over a Kind() method rather than
// through dynamic-dispatch-heavy base classes.
package ast

import "github.com/emberlang/emberc/frontend"

// AccessModifier controls whether a definition is visible outside its
// module.
type AccessModifier int

const (
	AccessNone AccessModifier = iota
	AccessPrivate
)

func (m AccessModifier) String() string {
	if m == AccessPrivate {
		return "private"
	}
	return ""
}

// InlineModifier requests that a function definition be inlined by the
// (out of scope) code generator.
type InlineModifier int

const (
	InlineNone InlineModifier = iota
	InlineInline
)

func (m InlineModifier) String() string {
	if m == InlineInline {
		return "inline"
	}
	return ""
}

// FunctionModifier marks a function as a compiler primitive.
type FunctionModifier int

const (
	FunctionModifierNone FunctionModifier = iota
	FunctionModifierPrimitive
)

func (m FunctionModifier) String() string {
	if m == FunctionModifierPrimitive {
		return "primitive"
	}
	return ""
}

// Annotation is a `@name(args...)` decoration on a function definition or
// constructor. Args is empty for a bare `@name` annotation.
type Annotation struct {
	NamePos frontend.Position
	Name    string
	Args    []Expression
}

// Argument is a single (name, optional type) parameter of a function or
// lambda.
type Argument struct {
	Pos   frontend.Position
	Ident string
	Type  TypeExpression // nil if omitted
}
