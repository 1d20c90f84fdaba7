package ast

import "github.com/emberlang/emberc/frontend"

// VariableKind tags the Variable variant.
type VariableKind int

const (
	VarUserDefined VariableKind = iota
	VarExternal
	VarAlias
)

// Variable is the tagged union of variable bodies a VariableDefinition can
// hold. All variants carry template state: IsTemplate and InstTypeParams
// (filled from `template(p1, p2, ...)`).
type Variable interface {
	Kind() VariableKind
	IsTemplate() bool
	InstTypeParams() []string
}

// VariableBase holds the fields shared by every Variable variant.
type VariableBase struct {
	Template   bool
	InstParams []string
}

func (b VariableBase) IsTemplate() bool           { return b.Template }
func (b VariableBase) InstTypeParams() []string    { return b.InstParams }

// UserDefinedVariable is `[template] name [: type] = value`. Type and Value
// are nil when omitted (a template declaration without a body).
type UserDefinedVariable struct {
	VariableBase
	Type  TypeExpression
	Value Expression
}

func (UserDefinedVariable) Kind() VariableKind { return VarUserDefined }

// ExternalVariable is `extern name : type = externName`.
type ExternalVariable struct {
	VariableBase
	Type       TypeExpression
	ExternName string
}

func (ExternalVariable) Kind() VariableKind { return VarExternal }

// AliasVariable is `name [: type] = .other.module.name`-style alias binding
// to another identifier (as opposed to a value expression).
type AliasVariable struct {
	VariableBase
	Type   TypeExpression
	Target frontend.Identifier
}

func (AliasVariable) Kind() VariableKind { return VarAlias }
