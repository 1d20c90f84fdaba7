package ast

import "github.com/emberlang/emberc/frontend"

// PatternKind tags the Pattern variant used by match expressions.
type PatternKind int

const (
	PatternVariable PatternKind = iota
	PatternConstructor
	PatternLiteral
	PatternWildcard
)

// Pattern is the tagged union of match-arm patterns.
type Pattern interface {
	Pos() frontend.Position
	Kind() PatternKind
}

type patternBase struct {
	pos frontend.Position
}

func (b patternBase) Pos() frontend.Position { return b.pos }

// VariablePattern binds the scrutinee (or a constructor field) to a name.
type VariablePattern struct {
	patternBase
	Name string
}

func NewVariablePattern(pos frontend.Position, name string) *VariablePattern {
	return &VariablePattern{patternBase{pos}, name}
}

func (*VariablePattern) Kind() PatternKind { return PatternVariable }

// ConstructorPattern matches a datatype constructor and destructures its
// fields into SubPatterns.
type ConstructorPattern struct {
	patternBase
	Ident       frontend.Identifier
	SubPatterns []Pattern
}

func NewConstructorPattern(pos frontend.Position, ident frontend.Identifier, subPatterns []Pattern) *ConstructorPattern {
	return &ConstructorPattern{patternBase{pos}, ident, subPatterns}
}

func (*ConstructorPattern) Kind() PatternKind { return PatternConstructor }

// LiteralPattern matches an exact literal value.
type LiteralPattern struct {
	patternBase
	Value LiteralValue
}

func NewLiteralPattern(pos frontend.Position, value LiteralValue) *LiteralPattern {
	return &LiteralPattern{patternBase{pos}, value}
}

func (*LiteralPattern) Kind() PatternKind { return PatternLiteral }

// WildcardPattern matches anything and binds nothing (`_`).
type WildcardPattern struct {
	patternBase
}

func NewWildcardPattern(pos frontend.Position) *WildcardPattern {
	return &WildcardPattern{patternBase{pos}}
}

func (*WildcardPattern) Kind() PatternKind { return PatternWildcard }
