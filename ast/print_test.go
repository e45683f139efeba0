package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/parser"
)

func printSource(t *testing.T, src string) string {
	t.Helper()
	exprs, errs := parser.Parse(src)
	require.Empty(t, errs)
	require.Len(t, exprs, 1)
	return ast.Print(exprs[0])
}

func TestPrintRoundTripsCanonicalForms(t *testing.T) {
	assert.Equal(t, "(defn f [a b] (+ a b))", printSource(t, "(defn  f [a b] (+ a b))"))
	assert.Equal(t, "[1 2 3]", printSource(t, "[1 2 3]"))
	assert.Equal(t, `{:a 1 :b 2}`, printSource(t, "{ :a 1 :b 2 }"))
	assert.Equal(t, `"hi"`, printSource(t, `"hi"`))
	assert.Equal(t, "true", printSource(t, "true"))
	assert.Equal(t, "nil", printSource(t, "nil"))
}

func TestPrintPreservesReaderMacros(t *testing.T) {
	assert.Equal(t, "'x", printSource(t, "'x"))
	assert.Equal(t, "`(1 ~x ~@xs)", printSource(t, "`(1 ~x ~@xs)"))
}
