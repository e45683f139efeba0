package lang

import (
	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/wisperr"
)

// quoteToValue implements spec.md §4.4's quote conversion: an expression
// becomes data without evaluation. Symbols surface as strings — the
// language has no first-class symbol type — and nested Quotes recurse.
func quoteToValue(expr ast.Expr) Value {
	switch e := expr.(type) {
	case *ast.Literal:
		return litToValue(e)
	case *ast.Symbol:
		return String(e.Name)
	case *ast.List:
		items := make([]Value, len(e.Items))
		for i, it := range e.Items {
			items[i] = quoteToValue(it)
		}
		return List{Items: items}
	case *ast.Vector:
		items := make([]Value, len(e.Items))
		for i, it := range e.Items {
			items[i] = quoteToValue(it)
		}
		return Vector{Items: items}
	case *ast.Map:
		keys := make([]Value, len(e.Keys))
		vals := make([]Value, len(e.Vals))
		for i := range e.Keys {
			keys[i] = quoteToValue(e.Keys[i])
			vals[i] = quoteToValue(e.Vals[i])
		}
		return NewMap(keys, vals)
	case *ast.Quote:
		return quoteToValue(e.X)
	case *ast.Quasiquote:
		// A quasiquote nested inside a quote is not itself resolved
		// (spec.md §4.4 only describes evaluation-time quasiquote); it
		// re-quotes its contents literally, same as any other sub-form.
		return quoteToValue(e.X)
	case *ast.Unquote:
		return quoteToValue(e.X)
	case *ast.Splice:
		return quoteToValue(e.X)
	default:
		return Nil
	}
}

// litToValue converts a parsed literal atom into its runtime Value.
func litToValue(l *ast.Literal) Value {
	switch l.Kind {
	case ast.LitNumber:
		return Number(l.Num)
	case ast.LitString:
		return String(l.Str)
	case ast.LitBool:
		return Bool(l.Bool)
	case ast.LitKeyword:
		return Keyword(l.Str)
	case ast.LitNil:
		return Nil
	default:
		return Nil
	}
}

// evalQuasiquote implements spec.md §4.4's structural quotation: Unquote
// sub-expressions are evaluated in env and spliced into the result at
// their position; Splice sub-expressions are evaluated and their sequence
// elements flattened into the enclosing collection; everything else
// follows plain quote rules. Nested quasiquotes are not supported — one
// found inside another re-quotes its contents literally (spec.md §9).
func (st *evalState) evalQuasiquote(expr ast.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *ast.Unquote:
		return st.eval(e.X, env)

	case *ast.Splice:
		return nil, wisperr.MacroError(&e.P, "splice not valid outside a list or vector position")

	case *ast.List:
		items, err := st.quasiquoteSeq(e.Items, env)
		if err != nil {
			return nil, err
		}
		return List{Items: items}, nil

	case *ast.Vector:
		items, err := st.quasiquoteSeq(e.Items, env)
		if err != nil {
			return nil, err
		}
		return Vector{Items: items}, nil

	case *ast.Map:
		keys := make([]Value, len(e.Keys))
		vals := make([]Value, len(e.Vals))
		for i := range e.Keys {
			k, err := st.evalQuasiquote(e.Keys[i], env)
			if err != nil {
				return nil, err
			}
			v, err := st.evalQuasiquote(e.Vals[i], env)
			if err != nil {
				return nil, err
			}
			keys[i], vals[i] = k, v
		}
		return NewMap(keys, vals), nil

	case *ast.Quasiquote:
		return quoteToValue(e.X), nil

	default:
		return quoteToValue(expr), nil
	}
}

// quasiquoteSeq resolves the elements of a quasiquoted list/vector,
// flattening any Splice element's sequence value into the result.
func (st *evalState) quasiquoteSeq(items []ast.Expr, env *Env) ([]Value, error) {
	var out []Value
	for _, it := range items {
		if splice, ok := it.(*ast.Splice); ok {
			v, err := st.eval(splice.X, env)
			if err != nil {
				return nil, err
			}
			seq, err := sequenceItems(v)
			if err != nil {
				return nil, wisperr.MacroError(&splice.P, "splice target is not a list or vector: %s", v.Kind())
			}
			out = append(out, seq...)
			continue
		}
		v, err := st.evalQuasiquote(it, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// sequenceItems returns v's elements if v is a List or Vector.
func sequenceItems(v Value) ([]Value, error) {
	switch s := v.(type) {
	case List:
		return s.Items, nil
	case Vector:
		return s.Items, nil
	default:
		return nil, wisperr.TypeError(nil, "expected a list or vector, got %s", v.Kind())
	}
}
