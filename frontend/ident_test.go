package frontend_test

import (
	"testing"

	"github.com/emberlang/emberc/frontend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsoluteIdentifierTableAddIdentAddsIdentifiers(t *testing.T) {
	table := frontend.NewAbsoluteIdentifierTable()
	a := frontend.NewAbsoluteIdentifier("foo", "bar")
	key, err := table.AddIdent(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), key.Key())

	b := frontend.NewAbsoluteIdentifier("baz")
	key2, err := table.AddIdent(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), key2.Key())

	got, ok := table.Ident(key)
	require.True(t, ok)
	assert.True(t, got.Equal(frontend.NewAbsoluteIdentifier("foo", "bar")))
}

func TestAbsoluteIdentifierTableAddIdentDoesNotAddDuplicate(t *testing.T) {
	table := frontend.NewAbsoluteIdentifierTable()
	_, err := table.AddIdent(frontend.NewAbsoluteIdentifier("foo"))
	require.NoError(t, err)

	_, err = table.AddIdent(frontend.NewAbsoluteIdentifier("foo"))
	assert.Error(t, err)
}

func TestAbsoluteIdentifierTableIdentReturnsNilForUnknownKey(t *testing.T) {
	table := frontend.NewAbsoluteIdentifierTable()
	_, err := table.AddIdent(frontend.NewAbsoluteIdentifier("foo"))
	require.NoError(t, err)

	_, ok := table.Ident(frontend.NewKeyIdentifier(5))
	assert.False(t, ok)
}

func TestAbsoluteIdentifierTableIdentByValueFindsInsertedIdentifier(t *testing.T) {
	table := frontend.NewAbsoluteIdentifierTable()
	key, err := table.AddIdent(frontend.NewAbsoluteIdentifier("a", "b", "c"))
	require.NoError(t, err)

	found, ok := table.IdentByValue(frontend.NewAbsoluteIdentifier("a", "b", "c"))
	require.True(t, ok)
	foundKey, _ := found.KeyIdent()
	assert.True(t, foundKey.Equal(key))
}

func TestAbsoluteIdentifierTableIdentByValueMissesUnknownIdentifier(t *testing.T) {
	table := frontend.NewAbsoluteIdentifierTable()
	_, err := table.AddIdent(frontend.NewAbsoluteIdentifier("a"))
	require.NoError(t, err)

	_, ok := table.IdentByValue(frontend.NewAbsoluteIdentifier("z"))
	assert.False(t, ok)
}

func TestAbsoluteIdentifierTableAddIdentOrGetKeyAddsIdentifiers(t *testing.T) {
	table := frontend.NewAbsoluteIdentifierTable()
	key, added := table.AddIdentOrGetKey(frontend.NewAbsoluteIdentifier("x", "y"))
	assert.True(t, added)
	assert.Equal(t, uint64(0), key.Key())
}

func TestAbsoluteIdentifierTableAddIdentOrGetKeyIsIdempotent(t *testing.T) {
	table := frontend.NewAbsoluteIdentifierTable()
	key1, added1 := table.AddIdentOrGetKey(frontend.NewAbsoluteIdentifier("x", "y"))
	assert.True(t, added1)

	key2, added2 := table.AddIdentOrGetKey(frontend.NewAbsoluteIdentifier("x", "y"))
	assert.False(t, added2)
	assert.True(t, key1.Equal(key2))
}

func TestAbsoluteIdentifierEqualityIgnoresKey(t *testing.T) {
	a := frontend.NewAbsoluteIdentifier("m", "n")
	b := frontend.NewAbsoluteIdentifier("m", "n")
	a.SetKeyIdent(frontend.NewKeyIdentifier(42))
	assert.True(t, a.Equal(b))
	assert.False(t, func() bool { _, ok := b.KeyIdent(); return ok }())
}

func TestEmptyAbsoluteIdentifierIsRootModule(t *testing.T) {
	root := frontend.NewAbsoluteIdentifier()
	assert.Empty(t, root.Segments)
	assert.Equal(t, ".", root.String())
}

func TestRelativeIdentifierRequiresSegments(t *testing.T) {
	assert.Panics(t, func() {
		frontend.NewRelativeIdentifier()
	})
}
