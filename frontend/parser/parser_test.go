package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
	"github.com/emberlang/emberc/frontend/parser"
)

func pos(line, col uint32) frontend.Position {
	return frontend.NewPosition(frontend.NewSource("t.mbr"), line, col)
}

func parseOne(t *testing.T, text string) (ast.DefinitionList, *frontend.ErrorList) {
	t.Helper()
	src := frontend.NewSource("t.mbr")
	var errs frontend.ErrorList
	tree := ast.NewTree()
	parser.Parse([]parser.SourceUnit{{Source: src, Text: text}}, tree, &errs)
	return tree.AllDefinitions(), &errs
}

func TestThreeTopLevelDefinitionsWithBlankLineSeparation(t *testing.T) {
	defs, errs := parseOne(t, "v = 1\n\nf() = 2\n\ng(x) = f() + v + x\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 3)

	v, ok := defs[0].(*ast.VariableDefinition)
	require.True(t, ok)
	assert.Equal(t, "v", v.Name)
	assert.Equal(t, pos(1, 1), v.Pos())
	uv, ok := v.Variable.(ast.UserDefinedVariable)
	require.True(t, ok)
	lit, ok := uv.Value.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, pos(1, 5), lit.Pos())
	assert.Equal(t, ast.IntValue{IntKind: ast.I64, Value: 1}, lit.Value)

	f, ok := defs[1].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "f", f.Name)
	assert.Equal(t, pos(3, 1), f.Pos())
	uf, ok := f.Function.(*ast.UserDefinedFunction)
	require.True(t, ok)
	fbody, ok := uf.Body.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, pos(3, 7), fbody.Pos())
	assert.Equal(t, ast.IntValue{IntKind: ast.I64, Value: 2}, fbody.Value)

	g, ok := defs[2].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "g", g.Name)
	gf, ok := g.Function.(*ast.UserDefinedFunction)
	require.True(t, ok)
	require.Len(t, gf.Args, 1)
	assert.Equal(t, "x", gf.Args[0].Ident)

	// g's body is ((+) ((+) (f()) v) x): left-associative.
	outer, ok := gf.Body.(*ast.NonUniqueApplication)
	require.True(t, ok)
	require.Len(t, outer.Args, 2)
	xVar, ok := outer.Args[1].(*ast.VariableExpression)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, xVar.Ident.Segments())

	inner, ok := outer.Args[0].(*ast.NonUniqueApplication)
	require.True(t, ok)
	require.Len(t, inner.Args, 2)
	vVar, ok := inner.Args[1].(*ast.VariableExpression)
	require.True(t, ok)
	assert.Equal(t, []string{"v"}, vVar.Ident.Segments())

	call, ok := inner.Args[0].(*ast.NonUniqueApplication)
	require.True(t, ok)
	fVar, ok := call.Fun.(*ast.VariableExpression)
	require.True(t, ok)
	assert.Equal(t, []string{"f"}, fVar.Ident.Segments())
	assert.Empty(t, call.Args)
}

func TestSemicolonSeparatedDefinitionsOnOneLine(t *testing.T) {
	defs, errs := parseOne(t, "a = 1; b = 2;\nc = 3\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 3)

	names := []string{"a", "b", "c"}
	positions := []frontend.Position{pos(1, 1), pos(1, 8), pos(2, 1)}
	for i, def := range defs {
		v, ok := def.(*ast.VariableDefinition)
		require.True(t, ok)
		assert.Equal(t, names[i], v.Name)
		assert.Equal(t, positions[i], v.Pos())
	}
}

func TestWideCharLiteralUpperUEscapeInFunctionBody(t *testing.T) {
	defs, errs := parseOne(t, "f() = w'\\U00ab1234'\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)

	f, ok := defs[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	uf, ok := f.Function.(*ast.UserDefinedFunction)
	require.True(t, ok)
	lit, ok := uf.Body.(*ast.Literal)
	require.True(t, ok)
	wc, ok := lit.Value.(ast.WideCharValue)
	require.True(t, ok)
	assert.Equal(t, rune(0x00ab1234), wc.Value)
}

func TestUnaryMinusFoldsIntoPrecedingIntLiteralSubtraction(t *testing.T) {
	defs, errs := parseOne(t, "e = -102i8 - 1i8\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)

	v, ok := defs[0].(*ast.VariableDefinition)
	require.True(t, ok)
	uv, ok := v.Variable.(ast.UserDefinedVariable)
	require.True(t, ok)
	lit, ok := uv.Value.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, pos(1, 5), lit.Pos())
	assert.Equal(t, ast.IntValue{IntKind: ast.I8, Value: -103}, lit.Value)
}

func TestInlineModifierAppliesToFollowingDefinitionNotItsOwnKeywordPosition(t *testing.T) {
	defs, errs := parseOne(t, "inline\nf() = 1\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)

	f, ok := defs[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, pos(2, 1), f.Pos())
	uf, ok := f.Function.(*ast.UserDefinedFunction)
	require.True(t, ok)
	assert.Equal(t, ast.InlineInline, uf.InlineMod)
}

func TestImportVariantsProduceRelativeAndAbsoluteIdentifiers(t *testing.T) {
	defs, errs := parseOne(t, "import stdlib.somemodule1\nimport .somelib.somemodule2\nimport .;\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 3)

	imp1, ok := defs[0].(*ast.Import)
	require.True(t, ok)
	assert.False(t, imp1.Ident.IsAbsolute())
	assert.Equal(t, []string{"stdlib", "somemodule1"}, imp1.Ident.Segments())

	imp2, ok := defs[1].(*ast.Import)
	require.True(t, ok)
	assert.True(t, imp2.Ident.IsAbsolute())
	assert.Equal(t, []string{"somelib", "somemodule2"}, imp2.Ident.Segments())

	imp3, ok := defs[2].(*ast.Import)
	require.True(t, ok)
	assert.True(t, imp3.Ident.IsAbsolute())
	assert.Empty(t, imp3.Ident.Segments())
}

func TestMalformedDefinitionRecoversAtNextTopLevelName(t *testing.T) {
	defs, errs := parseOne(t, "a = @\nb = 2\n")
	assert.False(t, errs.Empty())
	require.Len(t, defs, 2)
	b, ok := defs[1].(*ast.VariableDefinition)
	require.True(t, ok)
	assert.Equal(t, "b", b.Name)
}

func TestPrivateTemplateFunctionDefinitionWithAnnotation(t *testing.T) {
	defs, errs := parseOne(t, "private template(t) @pure id(x: t): t = x\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)

	f, ok := defs[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, ast.AccessPrivate, f.Access)
	assert.Equal(t, "id", f.Name)
	uf, ok := f.Function.(*ast.UserDefinedFunction)
	require.True(t, ok)
	assert.True(t, uf.Template)
	assert.Equal(t, []string{"t"}, uf.InstParams)
	require.Len(t, uf.Annots, 1)
	assert.Equal(t, "pure", uf.Annots[0].Name)
	require.Len(t, uf.Args, 1)
	assert.Equal(t, "x", uf.Args[0].Ident)
}

func TestExternVariableDefinition(t *testing.T) {
	defs, errs := parseOne(t, "extern pi: Double = c_pi\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)
	v, ok := defs[0].(*ast.VariableDefinition)
	require.True(t, ok)
	ev, ok := v.Variable.(*ast.ExternalVariable)
	require.True(t, ok)
	assert.Equal(t, "c_pi", ev.ExternName)
}

func TestExternFunctionDefinition(t *testing.T) {
	defs, errs := parseOne(t, "extern add(x: Int, y: Int): Int = c_add\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)
	f, ok := defs[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	ef, ok := f.Function.(*ast.ExternalFunction)
	require.True(t, ok)
	assert.Equal(t, "c_add", ef.ExternName)
	require.Len(t, ef.Args, 2)
}

func TestDatatypeDefinitionWithUnnamedFieldConstructors(t *testing.T) {
	defs, errs := parseOne(t, "datatype List = Nil | Cons(Int, List)\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)

	td, ok := defs[0].(*ast.TypeVariableDefinition)
	require.True(t, ok)
	dv, ok := td.TypeVariable.(ast.DatatypeVariable)
	require.True(t, ok)
	nd, ok := dv.Datatype.(ast.NonUniqueDatatype)
	require.True(t, ok)
	require.Len(t, nd.Constrs, 2)
	assert.Equal(t, "Nil", nd.Constrs[0].Ident)
	assert.Equal(t, "Cons", nd.Constrs[1].Ident)
	assert.Len(t, nd.Constrs[1].FieldTypes, 2)
}

func TestParameterizedTypeFunctionDefinition(t *testing.T) {
	defs, errs := parseOne(t, "datatype Pair(a, b) = MkPair{first: a, second: b}\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)

	td, ok := defs[0].(*ast.TypeFunctionDefinition)
	require.True(t, ok)
	df, ok := td.TypeFunction.(ast.DatatypeFunction)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, df.Args)
	nd, ok := df.Datatype.(ast.NonUniqueDatatype)
	require.True(t, ok)
	require.Len(t, nd.Constrs, 1)
	assert.Equal(t, ast.NamedFieldConstructorKind, nd.Constrs[0].Kind)
	require.Len(t, nd.Constrs[0].NamedFields, 2)
}

func TestModuleDefinitionNestsItsBody(t *testing.T) {
	defs, errs := parseOne(t, "module a.b {\n  x = 1\n  y = 2\n}\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)

	m, ok := defs[0].(*ast.ModuleDefinition)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Ident.Segments())
	require.Len(t, m.Defs, 2)
	assert.Equal(t, "x", m.Defs[0].(*ast.VariableDefinition).Name)
	assert.Equal(t, "y", m.Defs[1].(*ast.VariableDefinition).Name)
}

func TestInstanceWrapsFunctionDefinition(t *testing.T) {
	defs, errs := parseOne(t, "instance template(t) f(x: t): t = x\n")
	require.True(t, errs.Empty(), errs.Error())
	require.Len(t, defs, 1)
	_, ok := defs[0].(*ast.FunctionInstanceDefinition)
	assert.True(t, ok)
}

func TestIfThenElseExpression(t *testing.T) {
	defs, errs := parseOne(t, "f() = if true then 1 else 2\n")
	require.True(t, errs.Empty(), errs.Error())
	f := defs[0].(*ast.FunctionDefinition)
	uf := f.Function.(*ast.UserDefinedFunction)
	iff, ok := uf.Body.(*ast.If)
	require.True(t, ok)
	cond, ok := iff.Cond.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, ast.BoolValue{Value: true}, cond.Value)
}

func TestLetInExpression(t *testing.T) {
	defs, errs := parseOne(t, "f() = let x = 1; y = 2 in x + y\n")
	require.True(t, errs.Empty(), errs.Error())
	f := defs[0].(*ast.FunctionDefinition)
	uf := f.Function.(*ast.UserDefinedFunction)
	let, ok := uf.Body.(*ast.Let)
	require.True(t, ok)
	require.Len(t, let.Bindings, 2)
	assert.Equal(t, "x", let.Bindings[0].Name)
	assert.Equal(t, "y", let.Bindings[1].Name)
}

func TestMatchWithConstructorAndWildcardPatterns(t *testing.T) {
	defs, errs := parseOne(t, "f(x) = match x with\n  | Nil -> 0\n  | Cons(h, t) -> h\n  | _ -> 1\n")
	require.True(t, errs.Empty(), errs.Error())
	f := defs[0].(*ast.FunctionDefinition)
	uf := f.Function.(*ast.UserDefinedFunction)
	m, ok := uf.Body.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 3)

	nilPat, ok := m.Cases[0].Pattern.(*ast.ConstructorPattern)
	require.True(t, ok)
	assert.Equal(t, []string{"Nil"}, nilPat.Ident.Segments())
	assert.Empty(t, nilPat.SubPatterns)

	consPat, ok := m.Cases[1].Pattern.(*ast.ConstructorPattern)
	require.True(t, ok)
	require.Len(t, consPat.SubPatterns, 2)
	_, ok = consPat.SubPatterns[0].(*ast.VariablePattern)
	assert.True(t, ok)

	_, ok = m.Cases[2].Pattern.(*ast.WildcardPattern)
	assert.True(t, ok)
}

func TestLambdaExpressionSingleArg(t *testing.T) {
	defs, errs := parseOne(t, "f() = x -> x + 1\n")
	require.True(t, errs.Empty(), errs.Error())
	uf := defs[0].(*ast.FunctionDefinition).Function.(*ast.UserDefinedFunction)
	lam, ok := uf.Body.(*ast.Lambda)
	require.True(t, ok)
	require.Len(t, lam.Args, 1)
	assert.Equal(t, "x", lam.Args[0].Ident)
}

func TestTupleLiteralBuildsTupleConstructor(t *testing.T) {
	defs, errs := parseOne(t, "f() = (1, 2, 3)\n")
	require.True(t, errs.Empty(), errs.Error())
	uf := defs[0].(*ast.FunctionDefinition).Function.(*ast.UserDefinedFunction)
	cv, ok := uf.Body.(*ast.ConstructorValue)
	require.True(t, ok)
	assert.Equal(t, []string{"tuple"}, cv.ConstrIdent.Segments())
	assert.Len(t, cv.Args, 3)
}

func TestInfixOperatorFunctionDefinitionHead(t *testing.T) {
	defs, errs := parseOne(t, "x +++ y = x\n")
	require.True(t, errs.Empty(), errs.Error())
	f, ok := defs[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "+++", f.Name)
	uf := f.Function.(*ast.UserDefinedFunction)
	require.Len(t, uf.Args, 2)
	assert.Equal(t, "x", uf.Args[0].Ident)
	assert.Equal(t, "y", uf.Args[1].Ident)
}

func TestTypeSynonymDefinition(t *testing.T) {
	defs, errs := parseOne(t, "type IntPair = (Int, Int)\n")
	require.True(t, errs.Empty(), errs.Error())
	td, ok := defs[0].(*ast.TypeVariableDefinition)
	require.True(t, ok)
	sv, ok := td.TypeVariable.(ast.TypeSynonymVariable)
	require.True(t, ok)
	_, ok = sv.Expr.(*ast.TupleTypeExpression)
	assert.True(t, ok)
}

func TestFunctionTypeExpressionInSignature(t *testing.T) {
	defs, errs := parseOne(t, "extern apply(f: (Int) -> Int, x: Int): Int = c_apply\n")
	require.True(t, errs.Empty(), errs.Error())
	f := defs[0].(*ast.FunctionDefinition)
	ef := f.Function.(*ast.ExternalFunction)
	require.Len(t, ef.Args, 2)
	ft, ok := ef.Args[0].Type.(*ast.FunctionTypeExpression)
	require.True(t, ok)
	require.Len(t, ft.ArgTypes, 1)
}
