package builtin_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisplang/wisp/builtin"
	"github.com/wisplang/wisp/lang"
	"github.com/wisplang/wisp/parser"
	"github.com/wisplang/wisp/wisperr"
)

func run(t *testing.T, src string) (lang.Value, string) {
	t.Helper()
	var out strings.Builder
	env := builtin.NewRootEnv(func(s string) { out.WriteString(s) })
	exprs, errs := parser.Parse(src)
	require.Empty(t, errs)
	var result lang.Value = lang.Nil
	for _, e := range exprs {
		v, err := lang.Eval(e, env)
		require.NoError(t, err)
		result = v
	}
	return result, out.String()
}

func TestArithmetic(t *testing.T) {
	v, _ := run(t, `(+ 1 2 3)`)
	assert.Equal(t, lang.Number(6), v)
	v, _ = run(t, `(- 5)`)
	assert.Equal(t, lang.Number(-5), v)
	v, _ = run(t, `(- 10 3 2)`)
	assert.Equal(t, lang.Number(5), v)
	v, _ = run(t, `(*)`)
	assert.Equal(t, lang.Number(1), v)
	v, _ = run(t, `(/ 2)`)
	assert.Equal(t, lang.Number(0.5), v)
}

func TestComparisonAndEquality(t *testing.T) {
	v, _ := run(t, `(= 1 1)`)
	assert.Equal(t, lang.Bool(true), v)
	v, _ = run(t, `(= [1 2] [1 2])`)
	assert.Equal(t, lang.Bool(true), v)
	v, _ = run(t, `(= {:a 1 :b 2} {:b 2 :a 1})`)
	assert.Equal(t, lang.Bool(true), v)
	v, _ = run(t, `(< 1 2)`)
	assert.Equal(t, lang.Bool(true), v)
}

func TestListOps(t *testing.T) {
	v, _ := run(t, `(cons 1 (list 2 3))`)
	assert.Equal(t, "(1 2 3)", v.String())
	v, _ = run(t, `(car (list 1 2 3))`)
	assert.Equal(t, lang.Number(1), v)
	v, _ = run(t, `(cdr (list 1 2 3))`)
	assert.Equal(t, "(2 3)", v.String())
	v, _ = run(t, `(cdr (list))`)
	assert.Equal(t, "()", v.String())
}

func TestCarOfEmptyListIsRuntimeError(t *testing.T) {
	env := builtin.NewRootEnv(nil)
	exprs, errs := parser.Parse(`(car (list))`)
	require.Empty(t, errs)
	_, err := lang.Eval(exprs[0], env)
	require.Error(t, err)
}

func TestVectorOps(t *testing.T) {
	v, _ := run(t, `(vec (list 1 2 3))`)
	assert.Equal(t, "[1 2 3]", v.String())
	v, _ = run(t, `(nth [10 20 30] 1)`)
	assert.Equal(t, lang.Number(20), v)
	v, _ = run(t, `(length "hello")`)
	assert.Equal(t, lang.Number(5), v)
}

func TestMapOpsAndKeywordAccessor(t *testing.T) {
	v, _ := run(t, `(get {:a 1} :a)`)
	assert.Equal(t, lang.Number(1), v)
	v, _ = run(t, `(get {:a 1} :missing)`)
	assert.Equal(t, lang.Nil, v)
	v, _ = run(t, `(:name {:name "Alice" :age 30})`)
	assert.Equal(t, lang.String("Alice"), v)
	v, _ = run(t, `(assoc {:a 1} :b 2)`)
	assert.Equal(t, "{:a 1 :b 2}", v.String())
}

func TestHigherOrder(t *testing.T) {
	v, _ := run(t, `(map (fn [x] (* x 2)) [1 2 3])`)
	assert.Equal(t, "[2 4 6]", v.String())
	v, _ = run(t, `(filter (fn [x] (> x 1)) (list 1 2 3))`)
	assert.Equal(t, "(2 3)", v.String())
	v, _ = run(t, `(reduce + (list 1 2 3 4))`)
	assert.Equal(t, lang.Number(10), v)
	v, _ = run(t, `(reduce + 100 (list 1 2 3))`)
	assert.Equal(t, lang.Number(106), v)
}

func TestPrintAndStr(t *testing.T) {
	_, out := run(t, `(print 1 "two" 3)`)
	assert.Equal(t, "1 two 3", out)
	v, _ := run(t, `(str 1 "-" 2)`)
	assert.Equal(t, lang.String("1-2"), v)
}

func TestPredicatesAndTypeOf(t *testing.T) {
	v, _ := run(t, `(type-of 1)`)
	assert.Equal(t, lang.String("number"), v)
	v, _ = run(t, `(list? (list 1))`)
	assert.Equal(t, lang.Bool(true), v)
	v, _ = run(t, `(fn? (fn [x] x))`)
	assert.Equal(t, lang.Bool(true), v)
	v, _ = run(t, `(nil? nil)`)
	assert.Equal(t, lang.Bool(true), v)
}

func TestTypeErrorOnBadArithmeticArgument(t *testing.T) {
	env := builtin.NewRootEnv(nil)
	exprs, errs := parser.Parse(`(+ 1 "x")`)
	require.Empty(t, errs)
	_, err := lang.Eval(exprs[0], env)
	require.Error(t, err)
	kind, ok := wisperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, wisperr.Type, kind)
}

func TestExtraMathAndString(t *testing.T) {
	v, _ := run(t, `(sqrt 16)`)
	assert.Equal(t, lang.Number(4), v)
	v, _ = run(t, `(upper-case "hi")`)
	assert.Equal(t, lang.String("HI"), v)
	v, _ = run(t, `(join (split "a,b,c" ",") "-")`)
	assert.Equal(t, lang.String("a-b-c"), v)
	v, _ = run(t, `inf`)
	assert.Equal(t, lang.String("number"), lang.String(v.Kind().String()))
}
