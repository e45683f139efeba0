package lang

import (
	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/wisperr"
)

// specialFormFunc implements one reserved form. It receives the whole
// list (so it can report arity errors against the list's position) and
// the environment the form was invoked in.
type specialFormFunc func(st *evalState, list *ast.List, env *Env) (Value, error)

// specialForms holds the reserved forms of spec.md §4.3. cond/and/or are
// deliberately absent: SPEC_FULL.md §4 adds them as built-in macros
// installed into the macro table (see builtin/bootstrap.go), not as new evaluator
// syntax. Special forms are recognized syntactically, ahead of any macro
// or environment lookup, matching the (a)-before-(b)-before-(c) precedence
// spec.md §4.3 assigns to a list's symbol head.
var specialForms map[string]specialFormFunc

func init() {
	specialForms = map[string]specialFormFunc{
		"def":      sfDef,
		"defn":     sfDefn,
		"fn":       sfFn,
		"let":      sfLet,
		"if":       sfIf,
		"do":       sfDo,
		"quote":    sfQuote,
		"defmacro": sfDefmacro,
	}
}

func args(list *ast.List) []ast.Expr { return list.Items[1:] }

// checkDefinable rejects def/defn/defmacro attempts to bind a name already
// claimed by a special form or a primitive (SPEC_FULL.md §4's defmacro
// self-application guard), protecting the hygiene guarantee that a user
// or macro-introduced binding can never shadow if/let/fn/+/etc. out from
// under the evaluator.
func checkDefinable(form string, sym *ast.Symbol, env *Env) error {
	if _, reserved := specialForms[sym.Name]; reserved {
		return wisperr.RuntimeError(&sym.P, "%s: %q is a special form and cannot be redefined", form, sym.Name)
	}
	if existing, err := env.Root().Get(sym.Name); err == nil {
		if _, isPrimitive := existing.(Primitive); isPrimitive {
			return wisperr.RuntimeError(&sym.P, "%s: %q is a primitive and cannot be redefined", form, sym.Name)
		}
	}
	return nil
}

// sfDef installs a global binding: (def sym expr). Per spec.md §4.3/§9,
// def always targets the interpreter's root environment, regardless of
// the lexical scope the form is evaluated in.
func sfDef(st *evalState, list *ast.List, env *Env) (Value, error) {
	a := args(list)
	if len(a) != 2 {
		return nil, wisperr.ArityError(&list.P, "def", 2, len(a))
	}
	sym, ok := a[0].(*ast.Symbol)
	if !ok {
		return nil, wisperr.TypeError(pos(a[0]), "def expects a symbol as its first argument")
	}
	if err := checkDefinable("def", sym, env); err != nil {
		return nil, err
	}
	v, err := st.eval(a[1], env)
	if err != nil {
		return nil, err
	}
	env.Root().Define(sym.Name, v)
	return Nil, nil
}

// sfDefn is sugar for (def name (fn params body...)).
func sfDefn(st *evalState, list *ast.List, env *Env) (Value, error) {
	a := args(list)
	if len(a) < 2 {
		return nil, wisperr.ArityErrorf(&list.P, "wrong number of arguments to defn (want at least 2, got %d)", len(a))
	}
	sym, ok := a[0].(*ast.Symbol)
	if !ok {
		return nil, wisperr.TypeError(pos(a[0]), "defn expects a symbol as its first argument")
	}
	if err := checkDefinable("defn", sym, env); err != nil {
		return nil, err
	}
	closure, err := buildClosure(a[1], a[2:], env)
	if err != nil {
		return nil, err
	}
	closure.Name = sym.Name
	env.Root().Define(sym.Name, closure)
	return Nil, nil
}

// sfFn builds an anonymous closure: (fn [p...] body...) or (fn p body...).
func sfFn(st *evalState, list *ast.List, env *Env) (Value, error) {
	a := args(list)
	if len(a) < 1 {
		return nil, wisperr.ArityErrorf(&list.P, "wrong number of arguments to fn (want at least 1, got %d)", len(a))
	}
	return buildClosure(a[0], a[1:], env)
}

func buildClosure(paramsExpr ast.Expr, body []ast.Expr, env *Env) (Closure, error) {
	params, rest, err := parseParams(paramsExpr)
	if err != nil {
		return Closure{}, err
	}
	return Closure{
		Params: params,
		Rest:   rest,
		Body:   body,
		Env:    env,
		DefPos: paramsExpr.Pos(),
	}, nil
}

// parseParams interprets a parameter form: a bare symbol binds the whole
// argument list, and a vector of symbols supports a trailing "& rest"
// pair (SPEC_FULL.md §4's variadic supplement).
func parseParams(expr ast.Expr) (params []string, rest string, err error) {
	switch p := expr.(type) {
	case *ast.Symbol:
		return nil, p.Name, nil
	case *ast.Vector:
		for i := 0; i < len(p.Items); i++ {
			sym, ok := p.Items[i].(*ast.Symbol)
			if !ok {
				return nil, "", wisperr.TypeError(pos(p.Items[i]), "parameter list must contain only symbols")
			}
			if sym.Name == "&" {
				if i+2 != len(p.Items) {
					return nil, "", wisperr.MacroError(&p.P, "\"&\" must be followed by exactly one rest parameter name")
				}
				restSym, ok := p.Items[i+1].(*ast.Symbol)
				if !ok {
					return nil, "", wisperr.TypeError(pos(p.Items[i+1]), "rest parameter must be a symbol")
				}
				return params, restSym.Name, nil
			}
			params = append(params, sym.Name)
		}
		return params, "", nil
	default:
		return nil, "", wisperr.TypeError(pos(expr), "parameter list must be a vector or a symbol")
	}
}

// sfLet implements (let [p1 e1 p2 e2 ...] body...): bindings are
// introduced sequentially into one new child scope, each ei seeing the
// bindings before it, and the body evaluates in that same scope.
func sfLet(st *evalState, list *ast.List, env *Env) (Value, error) {
	a := args(list)
	if len(a) < 1 {
		return nil, wisperr.ArityErrorf(&list.P, "wrong number of arguments to let (want at least 1, got %d)", len(a))
	}
	bindings, ok := a[0].(*ast.Vector)
	if !ok {
		return nil, wisperr.TypeError(pos(a[0]), "let expects a vector of bindings")
	}
	if len(bindings.Items)%2 != 0 {
		return nil, wisperr.MacroError(&bindings.P, "let bindings must come in name/expression pairs")
	}

	scope := env.Child()
	for i := 0; i < len(bindings.Items); i += 2 {
		sym, ok := bindings.Items[i].(*ast.Symbol)
		if !ok {
			return nil, wisperr.TypeError(pos(bindings.Items[i]), "let binding name must be a symbol")
		}
		v, err := st.eval(bindings.Items[i+1], scope)
		if err != nil {
			return nil, err
		}
		scope.Define(sym.Name, v)
	}

	return st.evalBody(a[1:], scope)
}

// evalBody evaluates a sequence of body expressions in order, returning
// the last result, or Nil if there are none.
func (st *evalState) evalBody(body []ast.Expr, env *Env) (Value, error) {
	var result Value = Nil
	for _, e := range body {
		v, err := st.eval(e, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// sfIf implements (if c t) / (if c t e).
func sfIf(st *evalState, list *ast.List, env *Env) (Value, error) {
	a := args(list)
	if len(a) != 2 && len(a) != 3 {
		return nil, wisperr.ArityErrorf(&list.P, "wrong number of arguments to if (want 2 or 3, got %d)", len(a))
	}
	cond, err := st.eval(a[0], env)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return st.eval(a[1], env)
	}
	if len(a) == 3 {
		return st.eval(a[2], env)
	}
	return Nil, nil
}

// sfDo implements (do body...).
func sfDo(st *evalState, list *ast.List, env *Env) (Value, error) {
	return st.evalBody(args(list), env)
}

// sfQuote implements (quote x).
func sfQuote(st *evalState, list *ast.List, env *Env) (Value, error) {
	a := args(list)
	if len(a) != 1 {
		return nil, wisperr.ArityError(&list.P, "quote", 1, len(a))
	}
	return quoteToValue(a[0]), nil
}

// sfDefmacro installs a macro: (defmacro name [p...] body...).
func sfDefmacro(st *evalState, list *ast.List, env *Env) (Value, error) {
	a := args(list)
	if len(a) < 2 {
		return nil, wisperr.ArityErrorf(&list.P, "wrong number of arguments to defmacro (want at least 2, got %d)", len(a))
	}
	sym, ok := a[0].(*ast.Symbol)
	if !ok {
		return nil, wisperr.TypeError(pos(a[0]), "defmacro expects a symbol as its first argument")
	}
	if err := checkDefinable("defmacro", sym, env); err != nil {
		return nil, err
	}
	closure, err := buildClosure(a[1], a[2:], env)
	if err != nil {
		return nil, err
	}
	closure.Name = sym.Name
	env.DefineMacro(sym.Name, closure)
	return Nil, nil
}
