package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/emberc/frontend/ast"
	"github.com/emberlang/emberc/frontend/builtin"
)

func TestAddBuiltinTypesSeedsEveryPrimitive(t *testing.T) {
	tree := ast.NewTree()
	ok := builtin.BuiltinTypeAdder{}.AddBuiltinTypes(tree)
	assert.True(t, ok)

	defs := tree.AllDefinitions()
	names := make(map[string]bool, len(defs))
	for _, def := range defs {
		tv, isType := def.(*ast.TypeVariableDefinition)
		require.True(t, isType)
		assert.Equal(t, ast.AccessNone, tv.Access)
		_, isSynonym := tv.TypeVariable.(ast.TypeSynonymVariable)
		assert.True(t, isSynonym)
		names[tv.Name] = true
	}

	for _, want := range []string{"Int", "Int8", "Int16", "Int32", "Int64", "Float", "Double", "Char", "WChar", "Bool"} {
		assert.True(t, names[want], "missing builtin type %q", want)
	}
}

func TestAddBuiltinTypesAppendsOnEveryCall(t *testing.T) {
	tree := ast.NewTree()
	builtin.BuiltinTypeAdder{}.AddBuiltinTypes(tree)
	firstLen := len(tree.AllDefinitions())
	builtin.BuiltinTypeAdder{}.AddBuiltinTypes(tree)
	assert.Equal(t, firstLen*2, len(tree.AllDefinitions()))
}
