package examples

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	names := Names()

	require.NotEmpty(t, names)
	assert.True(t, sort.StringsAreSorted(names))

	seen := map[string]bool{}
	for _, ex := range All() {
		assert.False(t, seen[ex.Name], "duplicate example %s", ex.Name)
		seen[ex.Name] = true

		assert.NotEmpty(t, ex.Description, ex.Name)
		assert.NotZero(t, ex.Build().Len(), ex.Name)
	}
}

func TestLookup(t *testing.T) {
	ex, ok := Lookup("fib")
	require.True(t, ok)
	assert.Equal(t, "fib", ex.Name)

	_, ok = Lookup("missing")
	assert.False(t, ok)
}

func TestBuildReturnsFreshTrees(t *testing.T) {
	ex, ok := Lookup("fib")
	require.True(t, ok)

	first := ex.Build()
	second := ex.Build()

	assert.Equal(t, first.Funcs["fib"].String(), second.Funcs["fib"].String())
	assert.NotSame(t, first.Funcs["fib"], second.Funcs["fib"])
}

func TestFibShape(t *testing.T) {
	ex, ok := Lookup("fib")
	require.True(t, ok)

	expected := "(if (== n 0) 1 (if (== n 1) 1 (+ (fib (- n 1)) (fib (- n 2)))))"
	assert.Equal(t, expected, ex.Build().Funcs["fib"].String())
}
