package ast

import "github.com/emberlang/emberc/frontend"

// TypeExprKind tags the TypeExpression variant.
type TypeExprKind int

const (
	TypeExprVariable TypeExprKind = iota
	TypeExprParameter
	TypeExprApplication
	TypeExprFunction
	TypeExprTuple
)

// TypeExpression is the tagged union of type-level expressions.
type TypeExpression interface {
	Pos() frontend.Position
	Kind() TypeExprKind
}

type typeExprBase struct {
	pos frontend.Position
}

func (b typeExprBase) Pos() frontend.Position { return b.pos }

// TypeVariableExpression refers to a named type (a TypeVariableDefinition),
// possibly qualified, e.g. `Int` or `.stdlib.List`.
type TypeVariableExpression struct {
	typeExprBase
	Ident frontend.Identifier
}

func NewTypeVariableExpression(pos frontend.Position, ident frontend.Identifier) *TypeVariableExpression {
	return &TypeVariableExpression{typeExprBase{pos}, ident}
}

func (*TypeVariableExpression) Kind() TypeExprKind { return TypeExprVariable }

// TypeParameterExpression refers to a template type parameter by name, e.g.
// the `t` in `template(t) f(x: t): t = x`.
type TypeParameterExpression struct {
	typeExprBase
	Name string
}

func NewTypeParameterExpression(pos frontend.Position, name string) *TypeParameterExpression {
	return &TypeParameterExpression{typeExprBase{pos}, name}
}

func (*TypeParameterExpression) Kind() TypeExprKind { return TypeExprParameter }

// TypeApplication applies a type function/constructor to argument types,
// e.g. `List(Int)` or `T(t, u)`.
type TypeApplication struct {
	typeExprBase
	FunIdent frontend.Identifier
	Args     []TypeExpression
}

func NewTypeApplication(pos frontend.Position, funIdent frontend.Identifier, args []TypeExpression) *TypeApplication {
	return &TypeApplication{typeExprBase{pos}, funIdent, args}
}

func (*TypeApplication) Kind() TypeExprKind { return TypeExprApplication }

// FunctionTypeExpression is an arrow type `(T1, T2) -> T3`.
type FunctionTypeExpression struct {
	typeExprBase
	ArgTypes   []TypeExpression
	ResultType TypeExpression
}

func NewFunctionTypeExpression(pos frontend.Position, argTypes []TypeExpression, resultType TypeExpression) *FunctionTypeExpression {
	return &FunctionTypeExpression{typeExprBase{pos}, argTypes, resultType}
}

func (*FunctionTypeExpression) Kind() TypeExprKind { return TypeExprFunction }

// TupleTypeExpression is a tuple type `(T1, T2, T3)`.
type TupleTypeExpression struct {
	typeExprBase
	ElemTypes []TypeExpression
}

func NewTupleTypeExpression(pos frontend.Position, elemTypes []TypeExpression) *TupleTypeExpression {
	return &TupleTypeExpression{typeExprBase{pos}, elemTypes}
}

func (*TupleTypeExpression) Kind() TypeExprKind { return TypeExprTuple }
