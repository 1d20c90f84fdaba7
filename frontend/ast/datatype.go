package ast

import "github.com/emberlang/emberc/frontend"

// TypeVariableKind tags the TypeVariable variant.
type TypeVariableKind int

const (
	TypeVarSynonym TypeVariableKind = iota
	TypeVarDatatype
)

// TypeVariable is the body of a TypeVariableDefinition: either a type
// synonym (an alias expanding to another type expression) or a datatype
// (an algebraic type with constructors).
type TypeVariable interface {
	Kind() TypeVariableKind
}

// TypeSynonymVariable is `type Name = expr`.
type TypeSynonymVariable struct {
	Expr TypeExpression
}

func (TypeSynonymVariable) Kind() TypeVariableKind { return TypeVarSynonym }

// DatatypeVariable is `datatype Name = constructors` (or `unique datatype`).
type DatatypeVariable struct {
	Datatype Datatype
}

func (DatatypeVariable) Kind() TypeVariableKind { return TypeVarDatatype }

// TypeFunctionKind tags the TypeFunction variant.
type TypeFunctionKind int

const (
	TypeFuncSynonym TypeFunctionKind = iota
	TypeFuncDatatype
)

// TypeFunction is the body of a TypeFunctionDefinition: a parameterized type
// synonym or datatype, e.g. `type Pair(a, b) = ...`.
type TypeFunction interface {
	Kind() TypeFunctionKind
	ArgNames() []string
}

// TypeSynonymFunction is `type Name(args) = body`. Body is nil for a
// template declaration without a body.
type TypeSynonymFunction struct {
	Args []string
	Body TypeExpression
}

func (f TypeSynonymFunction) Kind() TypeFunctionKind { return TypeFuncSynonym }
func (f TypeSynonymFunction) ArgNames() []string     { return f.Args }

// DatatypeFunction is `datatype Name(args) = constructors`.
type DatatypeFunction struct {
	Args     []string
	Datatype Datatype
}

func (f DatatypeFunction) Kind() TypeFunctionKind { return TypeFuncDatatype }
func (f DatatypeFunction) ArgNames() []string     { return f.Args }

// DatatypeKind tags the Datatype variant.
type DatatypeKind int

const (
	NonUniqueDatatypeKind DatatypeKind = iota
	UniqueDatatypeKind
)

// Datatype is a bag of constructors, either freely copyable (non-unique) or
// linear/affine (unique).
type Datatype interface {
	Kind() DatatypeKind
	Constructors() []*Constructor
}

// NonUniqueDatatype is a freely copyable algebraic datatype.
type NonUniqueDatatype struct {
	Constrs []*Constructor
}

func (d NonUniqueDatatype) Kind() DatatypeKind         { return NonUniqueDatatypeKind }
func (d NonUniqueDatatype) Constructors() []*Constructor { return d.Constrs }

// UniqueDatatype is a datatype whose values have linear (move-only)
// semantics.
type UniqueDatatype struct {
	Constrs []*Constructor
}

func (d UniqueDatatype) Kind() DatatypeKind         { return UniqueDatatypeKind }
func (d UniqueDatatype) Constructors() []*Constructor { return d.Constrs }

// ConstructorKind tags the Constructor variant.
type ConstructorKind int

const (
	UnnamedFieldConstructorKind ConstructorKind = iota
	NamedFieldConstructorKind
)

// NamedConstructorField is one `name: type` field of a named-field
// constructor.
type NamedConstructorField struct {
	Name string
	Type TypeExpression
}

// Constructor is one alternative of a Datatype: either a tuple of unnamed
// field types or a record of named fields.
type Constructor struct {
	Pos         frontend.Position
	Kind        ConstructorKind
	Ident       string
	Access      AccessModifier
	Inline      InlineModifier
	Annotations []Annotation

	FieldTypes  []TypeExpression         // set when Kind == UnnamedFieldConstructorKind
	NamedFields []NamedConstructorField  // set when Kind == NamedFieldConstructorKind
}
