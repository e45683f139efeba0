package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisplang/wisp/builtin"
	"github.com/wisplang/wisp/lang"
	"github.com/wisplang/wisp/parser"
	"github.com/wisplang/wisp/token"
)

func evalSource(t *testing.T, src string, env *lang.Env) lang.Value {
	t.Helper()
	exprs, errs := parser.Parse(src)
	require.Empty(t, errs)
	var result lang.Value = lang.Nil
	for _, e := range exprs {
		v, err := lang.Eval(e, env)
		require.NoError(t, err)
		result = v
	}
	return result
}

func TestEvalLiteralsAndIf(t *testing.T) {
	env := lang.NewEnv(nil)
	v := evalSource(t, `(if true 1 2)`, env)
	assert.Equal(t, lang.Number(1), v)
	v = evalSource(t, `(if false 1 2)`, env)
	assert.Equal(t, lang.Number(2), v)
	v = evalSource(t, `(if nil 1)`, env)
	assert.Equal(t, lang.Nil, v)
}

func TestEvalDefFnLetDo(t *testing.T) {
	env := lang.NewEnv(nil)
	evalSource(t, `(def x 5)`, env)
	v := evalSource(t, `(let [y 10] (do (def z 1) z))`, env)
	assert.Equal(t, lang.Number(1), v)

	v2 := evalSource(t, `(let [a 1 b (fn [] a)] (b))`, env)
	assert.Equal(t, lang.Number(1), v2)
}

func TestClosureCapture(t *testing.T) {
	env := lang.NewEnv(nil)
	evalSource(t, `(def mk (fn [n] (fn [x] n)))`, env)
	evalSource(t, `(def get5 (mk 5))`, env)
	v := evalSource(t, `(get5 99)`, env)
	assert.Equal(t, lang.Number(5), v)
}

func TestVariadicRestParams(t *testing.T) {
	env := lang.NewEnv(nil)
	evalSource(t, `(def firstarg (fn [a & rest] a))`, env)
	v := evalSource(t, `(firstarg 1 2 3)`, env)
	assert.Equal(t, lang.Number(1), v)
}

func TestQuoteProducesData(t *testing.T) {
	env := lang.NewEnv(nil)
	v := evalSource(t, `(quote (a b c))`, env)
	list, ok := v.(lang.List)
	require.True(t, ok)
	require.Len(t, list.Items, 3)
	assert.Equal(t, lang.String("a"), list.Items[0])
}

func TestQuasiquoteUnquoteSplice(t *testing.T) {
	env := lang.NewEnv(nil)
	evalSource(t, `(def x 2)`, env)
	evalSource(t, `(def xs (quote (10 20)))`, env)
	v := evalSource(t, "`(1 ~x ~@xs)", env)
	list, ok := v.(lang.List)
	require.True(t, ok)
	require.Len(t, list.Items, 4)
	assert.Equal(t, lang.Number(1), list.Items[0])
	assert.Equal(t, lang.Number(2), list.Items[1])
	assert.Equal(t, lang.Number(10), list.Items[2])
	assert.Equal(t, lang.Number(20), list.Items[3])
}

func TestUnhygenicUnlessMacro(t *testing.T) {
	env := lang.NewEnv(nil)
	evalSource(t, "(defmacro unless [c t e] `(if ~c ~e ~t))", env)
	v := evalSource(t, `(unless false "a" "b")`, env)
	assert.Equal(t, lang.String("a"), v)
}

func TestMacroHygieneGensym(t *testing.T) {
	env := lang.NewEnv(nil)
	// A macro that introduces its own temporary binding named tmp# must
	// not capture a caller-visible `tmp` of the same textual name.
	evalSource(t, "(defmacro twice [e] `(let [tmp# ~e] (fn [] tmp#)))", env)
	evalSource(t, `(def tmp 999)`, env)
	v := evalSource(t, `((twice tmp) )`, env)
	assert.Equal(t, lang.Number(999), v)
}

func TestCondAndOr(t *testing.T) {
	// cond/and/or are built-in macros installed alongside the primitive
	// library (SPEC_FULL.md §4), not evaluator syntax, so they need a
	// fully-populated root environment rather than a bare lang.NewEnv.
	env := builtin.NewRootEnv(nil)
	v := evalSource(t, `(cond false 1 true 2)`, env)
	assert.Equal(t, lang.Number(2), v)
	v = evalSource(t, `(and true 1 2)`, env)
	assert.Equal(t, lang.Number(2), v)
	v = evalSource(t, `(or false nil 3)`, env)
	assert.Equal(t, lang.Number(3), v)
}

func TestMapLiteralAndAccessor(t *testing.T) {
	env := lang.NewEnv(nil)
	v := evalSource(t, `{:a 1 :b 2}`, env)
	m, ok := v.(lang.Map)
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())
	v = evalSource(t, `(:b {:a 1 :b 2})`, env)
	assert.Equal(t, lang.Number(2), v)
}

func TestUndefinedSymbolError(t *testing.T) {
	env := lang.NewEnv(nil)
	exprs, errs := parser.Parse(`undefined_thing`)
	require.Empty(t, errs)
	_, err := lang.Eval(exprs[0], env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined symbol")
}

func TestArityError(t *testing.T) {
	env := lang.NewEnv(nil)
	evalSource(t, `(def f (fn [a b] a))`, env)
	exprs, errs := parser.Parse(`(f 1)`)
	require.Empty(t, errs)
	_, err := lang.Eval(exprs[0], env)
	require.Error(t, err)
}

func TestCannotRedefineSpecialForm(t *testing.T) {
	env := lang.NewEnv(nil)
	exprs, errs := parser.Parse(`(def if 1)`)
	require.Empty(t, errs)
	_, err := lang.Eval(exprs[0], env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "special form")
}

func TestCannotRedefinePrimitive(t *testing.T) {
	env := lang.NewEnv(nil)
	env.Define("+", lang.Primitive{Name: "+", Fn: func(_ token.Pos, _ []lang.Value) (lang.Value, error) {
		return lang.Number(0), nil
	}})
	exprs, errs := parser.Parse(`(defn + [a b] a)`)
	require.Empty(t, errs)
	_, err := lang.Eval(exprs[0], env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primitive")
}
