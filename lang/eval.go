package lang

import (
	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/token"
	"github.com/wisplang/wisp/wisperr"
)

// DefaultMaxCallDepth bounds recursive Eval/Apply nesting so a runaway
// recursive program fails with a RuntimeError instead of exhausting the Go
// stack. spec.md §5 explicitly declines to guarantee tail-call
// optimization, so a depth cap is the language's only protection against
// unbounded native recursion. It is a per-Eval-call setting (see
// EvalWithLimits), not global state: spec.md §5 requires that two Interp
// instances share no state, so a host tuning its own cap must never affect
// any other instance running in the same process.
const DefaultMaxCallDepth = 10000

// evalState threads the call-depth counter and this evaluation's
// configured limits through a single top-level Eval invocation without
// adding parameters to every recursive call.
type evalState struct {
	depth           int
	macroExpansions int

	maxCallDepth       int
	maxMacroExpansions int
}

// Eval evaluates expr in env and returns the resulting Value, or the
// first error encountered, using the language's default resource limits.
// It is the entry point for callers that don't need a host-tuned cap, such
// as the builtin prelude and wisptest; interp.Interp.Run uses
// EvalWithLimits instead.
func Eval(expr ast.Expr, env *Env) (Value, error) {
	return EvalWithLimits(expr, env, DefaultMaxCallDepth, DefaultMaxMacroExpansions)
}

// EvalWithLimits is Eval with host-supplied resource caps, letting an
// Interp apply its own WithMaxCallDepth/WithMaxMacroExpansions options to
// one evaluation without touching any other Interp's limits.
func EvalWithLimits(expr ast.Expr, env *Env, maxCallDepth, maxMacroExpansions int) (Value, error) {
	st := &evalState{maxCallDepth: maxCallDepth, maxMacroExpansions: maxMacroExpansions}
	return st.eval(expr, env)
}

func (st *evalState) eval(expr ast.Expr, env *Env) (Value, error) {
	st.depth++
	defer func() { st.depth-- }()
	if st.depth > st.maxCallDepth {
		return nil, wisperr.RuntimeError(pos(expr), "call depth exceeded (max %d)", st.maxCallDepth)
	}

	switch e := expr.(type) {
	case *ast.Literal:
		return litToValue(e), nil

	case *ast.Symbol:
		v, err := env.Get(e.Name)
		if err != nil {
			return nil, wisperr.UnboundSymbolError(&e.P, e.Name)
		}
		return v, nil

	case *ast.Quote:
		return quoteToValue(e.X), nil

	case *ast.Quasiquote:
		return st.evalQuasiquote(e.X, env)

	case *ast.Unquote:
		return nil, wisperr.MacroError(&e.P, "unquote used outside quasiquote")

	case *ast.Splice:
		return nil, wisperr.MacroError(&e.P, "splice used outside quasiquote")

	case *ast.Vector:
		items := make([]Value, len(e.Items))
		for i, it := range e.Items {
			v, err := st.eval(it, env)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return Vector{Items: items}, nil

	case *ast.Map:
		keys := make([]Value, len(e.Keys))
		vals := make([]Value, len(e.Vals))
		for i := range e.Keys {
			k, err := st.eval(e.Keys[i], env)
			if err != nil {
				return nil, err
			}
			switch k.(type) {
			case String, Keyword:
			default:
				return nil, wisperr.TypeError(pos(e.Keys[i]), "map keys must be strings or keywords")
			}
			v, err := st.eval(e.Vals[i], env)
			if err != nil {
				return nil, err
			}
			keys[i], vals[i] = k, v
		}
		return NewMap(keys, vals), nil

	case *ast.List:
		return st.evalList(e, env)

	default:
		return nil, wisperr.RuntimeError(pos(expr), "cannot evaluate expression of unknown shape")
	}
}

// evalList dispatches an s-expression: special form, macro, or function
// call, in that priority order, matching spec.md §4.3's evaluation rule
// that special forms are recognized syntactically before their head is
// ever looked up as a value.
func (st *evalState) evalList(list *ast.List, env *Env) (Value, error) {
	if len(list.Items) == 0 {
		return List{}, nil
	}

	if head, ok := list.Items[0].(*ast.Symbol); ok {
		if fn, ok := specialForms[head.Name]; ok {
			return fn(st, list, env)
		}

		if mac, ok := env.GetMacro(head.Name); ok {
			expanded, err := st.expandMacro(mac, list, env)
			if err != nil {
				return nil, err
			}
			return st.eval(expanded, env)
		}
	}

	fnVal, err := st.eval(list.Items[0], env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(list.Items)-1)
	for i, a := range list.Items[1:] {
		v, err := st.eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return st.apply(fnVal, args, list.P)
}

func pos(expr ast.Expr) *token.Pos {
	p := expr.Pos()
	return &p
}
