package ast_test

import (
	"testing"

	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
	"github.com/stretchr/testify/assert"
)

func pos(line, col uint32) frontend.Position {
	return frontend.NewPosition(frontend.NewSource("t.mbr"), line, col)
}

func TestTreeAppendPreservesSourceOrder(t *testing.T) {
	tree := ast.NewTree()
	tree.Append(ast.DefinitionList{ast.NewImport(pos(1, 1), frontend.RelativeIdent(frontend.NewRelativeIdentifier("a")))})
	tree.Append(ast.DefinitionList{ast.NewImport(pos(1, 1), frontend.RelativeIdent(frontend.NewRelativeIdentifier("b")))})

	assert.Equal(t, 2, tree.Len())
	all := tree.AllDefinitions()
	assert.Len(t, all, 2)
	assert.Equal(t, []string{"a"}, all[0].(*ast.Import).Ident.Segments())
	assert.Equal(t, []string{"b"}, all[1].(*ast.Import).Ident.Segments())
}

func TestImportOfEmptyAbsoluteIdentHasNoSegments(t *testing.T) {
	imp := ast.NewImport(pos(3, 1), frontend.AbsoluteIdent(frontend.NewAbsoluteIdentifier()))
	assert.True(t, imp.Ident.IsAbsolute())
	assert.Empty(t, imp.Ident.Segments())
}

func TestVariableDefinitionKindDispatch(t *testing.T) {
	v := ast.NewVariableDefinition(pos(1, 1), "x", ast.AccessNone, ast.UserDefinedVariable{
		Value: ast.NewLiteral(pos(1, 5), ast.IntValue{IntKind: ast.I64, Value: 1}),
	})
	assert.Equal(t, ast.DefVariable, v.Kind())
	assert.Equal(t, ast.VarUserDefined, v.Variable.Kind())

	lit, ok := v.Variable.(ast.UserDefinedVariable).Value.(*ast.Literal)
	assert.True(t, ok)
	assert.Equal(t, ast.LitInt, lit.Value.Kind())
}

func TestFunctionDefinitionCarriesTemplateState(t *testing.T) {
	f := ast.NewFunctionDefinition(pos(2, 1), "id", ast.AccessNone, ast.UserDefinedFunction{
		FunctionBase: ast.FunctionBase{Template: true, InstParams: []string{"t"}},
		Args:         []ast.Argument{{Pos: pos(2, 4), Ident: "x"}},
		Body:         ast.NewVariableExpression(pos(2, 9), frontend.RelativeIdent(frontend.NewRelativeIdentifier("x"))),
	})
	assert.True(t, f.Function.IsTemplate())
	assert.Equal(t, []string{"t"}, f.Function.InstTypeParams())
}

func TestDatatypeConstructorsRoundtrip(t *testing.T) {
	nilCtor := &ast.Constructor{Pos: pos(1, 1), Kind: ast.UnnamedFieldConstructorKind, Ident: "Nil"}
	consCtor := &ast.Constructor{
		Pos:   pos(1, 10),
		Kind:  ast.UnnamedFieldConstructorKind,
		Ident: "Cons",
		FieldTypes: []ast.TypeExpression{
			ast.NewTypeVariableExpression(pos(1, 15), frontend.RelativeIdent(frontend.NewRelativeIdentifier("Int"))),
		},
	}
	dt := ast.NonUniqueDatatype{Constrs: []*ast.Constructor{nilCtor, consCtor}}
	assert.Equal(t, ast.NonUniqueDatatypeKind, dt.Kind())
	assert.Len(t, dt.Constructors(), 2)
	assert.Equal(t, "Cons", dt.Constructors()[1].Ident)
}
