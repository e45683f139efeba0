package lang

import (
	"github.com/wisplang/wisp/token"
	"github.com/wisplang/wisp/wisperr"
)

// Apply invokes a callable Value from outside the evaluator, letting the
// primitive library implement higher-order functions (map, filter,
// reduce) without importing evaluator internals. It runs under the
// language's default resource limits; a callable reached this way is
// already inside a call the host's own limits bounded on the way in.
func Apply(fn Value, args []Value, callPos token.Pos) (Value, error) {
	st := &evalState{maxCallDepth: DefaultMaxCallDepth, maxMacroExpansions: DefaultMaxMacroExpansions}
	return st.apply(fn, args, callPos)
}

// apply invokes fn with args, dispatching on the callable's concrete kind.
// Keywords are callable as one-argument map accessors, per spec.md §4.6's
// "keyword-as-function" convenience.
func (st *evalState) apply(fn Value, args []Value, callPos token.Pos) (Value, error) {
	switch f := fn.(type) {
	case Primitive:
		return f.Fn(callPos, args)

	case Closure:
		return st.applyClosure(f, args, callPos)

	case Keyword:
		if len(args) != 1 {
			return nil, wisperr.ArityError(&callPos, string(f), 1, len(args))
		}
		m, ok := args[0].(Map)
		if !ok {
			return nil, wisperr.TypeError(&callPos, "keyword accessor expects a map argument, got %s", args[0].Kind())
		}
		if v, ok := m.Get(f); ok {
			return v, nil
		}
		return Nil, nil

	default:
		return nil, wisperr.TypeError(&callPos, "value of kind %s is not callable", fn.Kind())
	}
}

func (st *evalState) applyClosure(c Closure, args []Value, callPos token.Pos) (Value, error) {
	if c.Rest == "" && len(args) != len(c.Params) {
		return nil, wisperr.ArityError(&callPos, closureName(c), len(c.Params), len(args))
	}
	if c.Rest != "" && len(args) < len(c.Params) {
		return nil, wisperr.ArityErrorf(&callPos, "wrong number of arguments to %s (want at least %d, got %d)",
			closureName(c), len(c.Params), len(args))
	}

	call := c.Env.Child()
	for i, name := range c.Params {
		call.Define(name, args[i])
	}
	if c.Rest != "" {
		call.Define(c.Rest, List{Items: append([]Value{}, args[len(c.Params):]...)})
	}

	var result Value = Nil
	var err error
	for _, bodyExpr := range c.Body {
		result, err = st.eval(bodyExpr, call)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// closureName names c for an arity-error message; unlike Closure.String
// (which always renders "#<fn>" per spec.md's closure-formatting rule),
// an error message benefits from naming the offending function when one
// is available.
func closureName(c Closure) string {
	if c.Name != "" {
		return c.Name
	}
	return "#<fn>"
}
