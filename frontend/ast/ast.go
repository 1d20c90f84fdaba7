package ast

import "github.com/emberlang/emberc/frontend"

// DefinitionKind tags the Definition variant.
type DefinitionKind int

const (
	DefImport DefinitionKind = iota
	DefModule
	DefVariable
	DefFunction
	DefTypeVariable
	DefTypeFunction
	DefVariableInstance
	DefFunctionInstance
	DefTypeFunctionInstance
)

// Definition is the tagged union of top-level (or module-scoped) tree
// nodes. Pos() is the position of the *defined identifier*, not of any
// leading modifier or annotation.
type Definition interface {
	Pos() frontend.Position
	Kind() DefinitionKind
}

type defBase struct {
	pos frontend.Position
}

func (b defBase) Pos() frontend.Position { return b.pos }

// Import is `import [.]path.to.module`.
type Import struct {
	defBase
	Ident frontend.Identifier
}

func NewImport(pos frontend.Position, ident frontend.Identifier) *Import {
	return &Import{defBase{pos}, ident}
}

func (*Import) Kind() DefinitionKind { return DefImport }

// ModuleDefinition is `module path { ...definitions... }`.
type ModuleDefinition struct {
	defBase
	Ident frontend.Identifier
	Defs  DefinitionList
}

func NewModuleDefinition(pos frontend.Position, ident frontend.Identifier, defs DefinitionList) *ModuleDefinition {
	return &ModuleDefinition{defBase{pos}, ident, defs}
}

func (*ModuleDefinition) Kind() DefinitionKind { return DefModule }

// VariableDefinition binds a name to a Variable body.
type VariableDefinition struct {
	defBase
	Name     string
	Access   AccessModifier
	Variable Variable
}

func NewVariableDefinition(pos frontend.Position, name string, access AccessModifier, v Variable) *VariableDefinition {
	return &VariableDefinition{defBase{pos}, name, access, v}
}

func (*VariableDefinition) Kind() DefinitionKind { return DefVariable }

// FunctionDefinition binds a name (or an operator spelling, for infix/prefix
// operator definitions) to a Function body.
type FunctionDefinition struct {
	defBase
	Name     string
	Access   AccessModifier
	Function Function
}

func NewFunctionDefinition(pos frontend.Position, name string, access AccessModifier, f Function) *FunctionDefinition {
	return &FunctionDefinition{defBase{pos}, name, access, f}
}

func (*FunctionDefinition) Kind() DefinitionKind { return DefFunction }

// TypeVariableDefinition binds a type name to a TypeVariable body (a type
// synonym or a nullary datatype).
type TypeVariableDefinition struct {
	defBase
	Name         string
	Access       AccessModifier
	TypeVariable TypeVariable
}

func NewTypeVariableDefinition(pos frontend.Position, name string, access AccessModifier, tv TypeVariable) *TypeVariableDefinition {
	return &TypeVariableDefinition{defBase{pos}, name, access, tv}
}

func (*TypeVariableDefinition) Kind() DefinitionKind { return DefTypeVariable }

// TypeFunctionDefinition binds a type name to a TypeFunction body (a
// parameterized type synonym or datatype).
type TypeFunctionDefinition struct {
	defBase
	Name         string
	Access       AccessModifier
	TypeFunction TypeFunction
}

func NewTypeFunctionDefinition(pos frontend.Position, name string, access AccessModifier, tf TypeFunction) *TypeFunctionDefinition {
	return &TypeFunctionDefinition{defBase{pos}, name, access, tf}
}

func (*TypeFunctionDefinition) Kind() DefinitionKind { return DefTypeFunction }

// VariableInstanceDefinition wraps a VariableDefinition as a concrete
// specialization of a template (`instance` before a variable definition).
type VariableInstanceDefinition struct {
	defBase
	Def *VariableDefinition
}

func NewVariableInstanceDefinition(pos frontend.Position, def *VariableDefinition) *VariableInstanceDefinition {
	return &VariableInstanceDefinition{defBase{pos}, def}
}

func (*VariableInstanceDefinition) Kind() DefinitionKind { return DefVariableInstance }

// FunctionInstanceDefinition wraps a FunctionDefinition as a concrete
// specialization of a template.
type FunctionInstanceDefinition struct {
	defBase
	Def *FunctionDefinition
}

func NewFunctionInstanceDefinition(pos frontend.Position, def *FunctionDefinition) *FunctionInstanceDefinition {
	return &FunctionInstanceDefinition{defBase{pos}, def}
}

func (*FunctionInstanceDefinition) Kind() DefinitionKind { return DefFunctionInstance }

// TypeFunctionInstanceDefinition wraps a TypeFunctionDefinition as a
// concrete specialization of a template.
type TypeFunctionInstanceDefinition struct {
	defBase
	Def *TypeFunctionDefinition
}

func NewTypeFunctionInstanceDefinition(pos frontend.Position, def *TypeFunctionDefinition) *TypeFunctionInstanceDefinition {
	return &TypeFunctionInstanceDefinition{defBase{pos}, def}
}

func (*TypeFunctionInstanceDefinition) Kind() DefinitionKind { return DefTypeFunctionInstance }

// DefinitionList is an ordered sequence of Definitions, as produced by
// parsing one source or one `module { ... }` body.
type DefinitionList []Definition

// Tree owns every definition parsed across every source, one DefinitionList
// per source, in source order. It is append-only during parsing.
type Tree struct {
	defLists []DefinitionList
}

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// Append adds defs as the next source's DefinitionList.
func (t *Tree) Append(defs DefinitionList) {
	t.defLists = append(t.defLists, defs)
}

// DefinitionLists returns every source's DefinitionList, in append order.
func (t *Tree) DefinitionLists() []DefinitionList {
	return t.defLists
}

// AllDefinitions flattens every source's DefinitionList into one slice, in
// source order, for callers that don't care about source boundaries.
func (t *Tree) AllDefinitions() []Definition {
	var all []Definition
	for _, defs := range t.defLists {
		all = append(all, defs...)
	}
	return all
}

// Len returns the number of DefinitionLists (sources) appended so far.
func (t *Tree) Len() int {
	return len(t.defLists)
}
