// Package builtin seeds an ast.Tree with the primitive types every program
// implicitly has in scope, without requiring the parser or its grammar to
// know anything about them. It runs as an ordinary collaborator alongside
// parser.Parse, upstream of (out of scope) name resolution.
package builtin

import (
	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
)

// names is the seeded primitive type set, in the order AddBuiltinTypes
// appends them. Each becomes an opaque TypeVariableDefinition: a named type
// with no expansion, since the compiler's primitive types are not defined
// in terms of anything else in the language.
var names = []string{
	"Int", "Int8", "Int16", "Int32", "Int64",
	"Float", "Double",
	"Char", "WChar",
	"Bool",
}

// source is the synthetic frontend.Source every builtin definition is
// attributed to, distinguishing it from any real input file in diagnostics.
var source = frontend.NewSource("<builtin>")

// BuiltinTypeAdder seeds an ast.Tree with the language's primitive types.
// It holds no state; its only purpose is to give the operation a name
// matching its downstream collaborators (Parser, Resolver).
type BuiltinTypeAdder struct{}

// AddBuiltinTypes appends one DefinitionList containing an opaque,
// public TypeVariableDefinition for every primitive type to tree, then
// reports true. It cannot fail: unlike parser.Parse, which collects
// user-facing syntax errors, this is a fixed, internally-controlled seed
// list, so the bool return exists only to match the shape of the other
// public entry points (parser.Parse, Resolver.Resolve).
func (BuiltinTypeAdder) AddBuiltinTypes(tree *ast.Tree) bool {
	defs := make(ast.DefinitionList, 0, len(names))
	for i, name := range names {
		pos := frontend.NewPosition(source, 1, uint32(i+1))
		tv := ast.TypeSynonymVariable{}
		defs = append(defs, ast.NewTypeVariableDefinition(pos, name, ast.AccessNone, tv))
	}
	tree.Append(defs)
	return true
}
