package lang

import (
	"strings"

	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/wisperr"
)

// DefaultMaxMacroExpansions bounds the number of macro expansions
// performed during one top-level Eval, guarding against runaway recursive
// macros (spec.md §4.5's "cap expansion depth ... raising macro expansion
// too deep on overflow"). Like DefaultMaxCallDepth, this is only the
// default for a single evaluation (see EvalWithLimits) — never mutated
// global state a second Interp could stomp on.
const DefaultMaxMacroExpansions = 1000

// expandMacro expands one macro call: the call's unevaluated argument
// expressions are bound to the macro's parameters, the macro body runs to
// produce a data value describing an expression, that value is converted
// back into an expression tree, and identifiers in it that end in "#" are
// renamed to fresh names before the caller re-evaluates it. Any other
// identifier the macro body introduces keeps its written name.
func (st *evalState) expandMacro(mac Closure, call *ast.List, env *Env) (ast.Expr, error) {
	st.macroExpansions++
	if st.macroExpansions > st.maxMacroExpansions {
		return nil, wisperr.MacroError(&call.P, "macro expansion too deep")
	}

	argExprs := call.Items[1:]
	if mac.Rest == "" && len(argExprs) != len(mac.Params) {
		return nil, wisperr.ArityError(&call.P, mac.Name, len(mac.Params), len(argExprs))
	}
	if mac.Rest != "" && len(argExprs) < len(mac.Params) {
		return nil, wisperr.ArityErrorf(&call.P, "wrong number of arguments to %s (want at least %d, got %d)",
			mac.Name, len(mac.Params), len(argExprs))
	}

	expandEnv := mac.Env.Child()
	for i, name := range mac.Params {
		expandEnv.Define(name, quoteToValue(argExprs[i]))
	}
	if mac.Rest != "" {
		rest := make([]Value, len(argExprs)-len(mac.Params))
		for i, e := range argExprs[len(mac.Params):] {
			rest[i] = quoteToValue(e)
		}
		expandEnv.Define(mac.Rest, List{Items: rest})
	}

	result, err := st.evalBody(mac.Body, expandEnv)
	if err != nil {
		return nil, err
	}

	expanded, err := valueToExpr(result)
	if err != nil {
		return nil, wisperr.MacroError(&call.P, "%v", err)
	}

	return renameGensyms(expanded, env), nil
}

// valueToExpr converts a data Value produced by a macro body back into an
// expression to be evaluated, the inverse of quoteToValue. Strings become
// symbol references: the language has no first-class symbol type, so a
// macro template that wants to weave together code represents its symbols
// as quoted strings the same way plain quote does (spec.md §4.4), and
// this is the point where that representation becomes code again.
func valueToExpr(v Value) (ast.Expr, error) {
	switch x := v.(type) {
	case Number:
		return &ast.Literal{Kind: ast.LitNumber, Num: float64(x)}, nil
	case Bool:
		return &ast.Literal{Kind: ast.LitBool, Bool: bool(x)}, nil
	case NilValue:
		return &ast.Literal{Kind: ast.LitNil}, nil
	case Keyword:
		return &ast.Literal{Kind: ast.LitKeyword, Str: string(x)}, nil
	case String:
		return &ast.Symbol{Name: string(x)}, nil
	case List:
		items := make([]ast.Expr, len(x.Items))
		for i, it := range x.Items {
			e, err := valueToExpr(it)
			if err != nil {
				return nil, err
			}
			items[i] = e
		}
		return &ast.List{Items: items}, nil
	case Vector:
		items := make([]ast.Expr, len(x.Items))
		for i, it := range x.Items {
			e, err := valueToExpr(it)
			if err != nil {
				return nil, err
			}
			items[i] = e
		}
		return &ast.Vector{Items: items}, nil
	case Map:
		keys := make([]ast.Expr, x.Len())
		vals := make([]ast.Expr, x.Len())
		for i, k := range x.Keys() {
			ke, err := valueToExpr(k)
			if err != nil {
				return nil, err
			}
			val, _ := x.Get(k)
			ve, err := valueToExpr(val)
			if err != nil {
				return nil, err
			}
			keys[i], vals[i] = ke, ve
		}
		return &ast.Map{Keys: keys, Vals: vals}, nil
	default:
		return nil, wisperr.RuntimeError(nil, "macro body must return an expression-shaped value, got %s", v.Kind())
	}
}

// gensymSuffix marks an identifier, written inside a macro's quasiquote
// template, as fresh for each expansion (spec.md §4.5's "trailing # on an
// identifier" hygiene convention).
const gensymSuffix = "#"

// renameGensyms walks expanded and replaces every symbol ending in "#"
// with a fresh name unique to this expansion, mapping repeated
// occurrences of the same hashed name to the same generated identifier.
// Fresh names are drawn from env's interpreter-local counter (see
// gensym.go), never a process-global one, so two Interp instances never
// influence each other's generated names.
func renameGensyms(expanded ast.Expr, env *Env) ast.Expr {
	names := make(map[string]string)
	return rewriteSymbols(expanded, env, names)
}

func rewriteSymbols(expr ast.Expr, env *Env, names map[string]string) ast.Expr {
	switch e := expr.(type) {
	case *ast.Symbol:
		if !strings.HasSuffix(e.Name, gensymSuffix) {
			return e
		}
		fresh, ok := names[e.Name]
		if !ok {
			fresh = env.gensym(strings.TrimSuffix(e.Name, gensymSuffix))
			names[e.Name] = fresh
		}
		return &ast.Symbol{Name: fresh, P: e.P}
	case *ast.List:
		e.Items = rewriteAll(e.Items, env, names)
		return e
	case *ast.Vector:
		e.Items = rewriteAll(e.Items, env, names)
		return e
	case *ast.Map:
		e.Keys = rewriteAll(e.Keys, env, names)
		e.Vals = rewriteAll(e.Vals, env, names)
		return e
	case *ast.Quote:
		e.X = rewriteSymbols(e.X, env, names)
		return e
	case *ast.Quasiquote:
		e.X = rewriteSymbols(e.X, env, names)
		return e
	case *ast.Unquote:
		e.X = rewriteSymbols(e.X, env, names)
		return e
	case *ast.Splice:
		e.X = rewriteSymbols(e.X, env, names)
		return e
	default:
		return expr
	}
}

func rewriteAll(exprs []ast.Expr, env *Env, names map[string]string) []ast.Expr {
	for i, e := range exprs {
		exprs[i] = rewriteSymbols(e, env, names)
	}
	return exprs
}
