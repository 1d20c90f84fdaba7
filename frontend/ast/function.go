package ast

// FunctionKind tags the Function variant.
type FunctionKind int

const (
	FuncUserDefined FunctionKind = iota
	FuncExternal
	FuncNative
)

// Function is the tagged union of function bodies a FunctionDefinition can
// hold. All variants carry annotations, modifiers and template state.
type Function interface {
	Kind() FunctionKind
	IsTemplate() bool
	InstTypeParams() []string
	Modifier() FunctionModifier
	Inline() InlineModifier
	Annotations() []Annotation
}

// FunctionBase holds the fields shared by every Function variant.
type FunctionBase struct {
	Template    bool
	InstParams  []string
	Mod         FunctionModifier
	InlineMod   InlineModifier
	Annots      []Annotation
}

func (b FunctionBase) IsTemplate() bool             { return b.Template }
func (b FunctionBase) InstTypeParams() []string      { return b.InstParams }
func (b FunctionBase) Modifier() FunctionModifier    { return b.Mod }
func (b FunctionBase) Inline() InlineModifier        { return b.InlineMod }
func (b FunctionBase) Annotations() []Annotation     { return b.Annots }

// UserDefinedFunction is `[inline] [primitive] name(args) [: result] = body`
// or the infix-operator-head form. Body is nil for a template declaration
// without a body.
type UserDefinedFunction struct {
	FunctionBase
	Args       []Argument
	ResultType TypeExpression
	Body       Expression
}

func (UserDefinedFunction) Kind() FunctionKind { return FuncUserDefined }

// ExternalFunction is `extern name(args) : result = externName`.
type ExternalFunction struct {
	FunctionBase
	Args       []Argument
	ResultType TypeExpression
	ExternName string
}

func (ExternalFunction) Kind() FunctionKind { return FuncExternal }

// NativeFunction is `native name(args) : result = nativeName`.
type NativeFunction struct {
	FunctionBase
	Args       []Argument
	ResultType TypeExpression
	NativeName string
}

func (NativeFunction) Kind() FunctionKind { return FuncNative }
