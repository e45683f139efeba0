package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/parser"
)

func TestParseAtoms(t *testing.T) {
	exprs, errs := parser.Parse(`42 -3.5 "hi" :kw true false nil sym`)
	require.Empty(t, errs)
	require.Len(t, exprs, 8)

	num := exprs[0].(*ast.Literal)
	assert.Equal(t, ast.LitNumber, num.Kind)
	assert.Equal(t, 42.0, num.Num)

	neg := exprs[1].(*ast.Literal)
	assert.Equal(t, -3.5, neg.Num)

	str := exprs[2].(*ast.Literal)
	assert.Equal(t, ast.LitString, str.Kind)
	assert.Equal(t, "hi", str.Str)

	kw := exprs[3].(*ast.Literal)
	assert.Equal(t, ast.LitKeyword, kw.Kind)
	assert.Equal(t, ":kw", kw.Str)

	assert.True(t, exprs[4].(*ast.Literal).Bool)
	assert.False(t, exprs[5].(*ast.Literal).Bool)
	assert.Equal(t, ast.LitNil, exprs[6].(*ast.Literal).Kind)

	sym := exprs[7].(*ast.Symbol)
	assert.Equal(t, "sym", sym.Name)
}

func TestParseList(t *testing.T) {
	exprs, errs := parser.Parse(`(+ 1 2 3)`)
	require.Empty(t, errs)
	require.Len(t, exprs, 1)

	list := exprs[0].(*ast.List)
	require.Len(t, list.Items, 4)
	assert.Equal(t, "+", list.Items[0].(*ast.Symbol).Name)
}

func TestParseVectorAndMap(t *testing.T) {
	exprs, errs := parser.Parse(`[1 2 3] {:a 1 :b 2}`)
	require.Empty(t, errs)
	require.Len(t, exprs, 2)

	vec := exprs[0].(*ast.Vector)
	require.Len(t, vec.Items, 3)

	m := exprs[1].(*ast.Map)
	require.Len(t, m.Keys, 2)
	require.Len(t, m.Vals, 2)
	assert.Equal(t, ":a", m.Keys[0].(*ast.Literal).Str)
}

func TestParseQuoteFamily(t *testing.T) {
	exprs, errs := parser.Parse("'(1 2) `(1 ~x ~@xs)")
	require.Empty(t, errs)
	require.Len(t, exprs, 2)

	q := exprs[0].(*ast.Quote)
	_, ok := q.X.(*ast.List)
	assert.True(t, ok)

	qq := exprs[1].(*ast.Quasiquote)
	inner := qq.X.(*ast.List)
	require.Len(t, inner.Items, 3)
	_, isUnquote := inner.Items[1].(*ast.Unquote)
	assert.True(t, isUnquote)
	_, isSplice := inner.Items[2].(*ast.Splice)
	assert.True(t, isSplice)
}

func TestParseCollectsMultipleErrorsAndContinues(t *testing.T) {
	exprs, errs := parser.Parse(`(+ 1 2) ) (foo`)
	// The stray ')' and the unterminated '(foo' should both be reported,
	// while the well-formed '(+ 1 2)' before them still parses.
	assert.GreaterOrEqual(t, len(errs), 2)
	require.Len(t, exprs, 1)
	assert.Equal(t, "+", exprs[0].(*ast.List).Items[0].(*ast.Symbol).Name)
}

func TestParseOddMapIsError(t *testing.T) {
	_, errs := parser.Parse(`{:a 1 :b}`)
	require.NotEmpty(t, errs)
}
