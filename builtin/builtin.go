// Package builtin implements the primitive library spec.md §4.6
// pre-populates the root environment with: arithmetic, comparison,
// list/vector/map operations, higher-order functions, I/O, and
// type-predicate/introspection primitives. Grounded on the table-driven
// registration in lisp/builtins.go (a []*langBuiltin of name/fn pairs
// installed via LEnv.AddBuiltins), adapted to lang.Primitive values
// stored directly in a lang.Env instead of a separate builtin registry.
package builtin

import (
	"fmt"
	"math"
	"os"

	"github.com/wisplang/wisp/lang"
	"github.com/wisplang/wisp/token"
	"github.com/wisplang/wisp/wisperr"
)

// entry pairs a primitive's name with its implementation, mirroring the
// teacher's langBuiltin{name, fn} table.
type entry struct {
	name string
	fn   lang.PrimitiveFunc
}

// NewRootEnv returns a fresh root environment with every primitive
// installed. print writes through printSink; a nil printSink writes to
// os.Stdout, matching spec.md §6's "if none is installed, print writes to
// the host's standard output" default.
func NewRootEnv(printSink func(string)) *lang.Env {
	env := lang.NewEnv(nil)
	Install(env, printSink)
	return env
}

// Install binds every primitive into env, which need not be a root
// environment (tests may install a subset into a scratch scope).
func Install(env *lang.Env, printSink func(string)) {
	if printSink == nil {
		printSink = func(s string) { fmt.Fprint(os.Stdout, s) }
	}
	for _, e := range arithmeticEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range comparisonEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range listEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range vectorEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range mapEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range higherOrderEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range ioEntries(printSink) {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range predicateEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range extraMathEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	extraMathConstants(env)
	for _, e := range extraStringEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range extraRegexpEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range extraTimeEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	for _, e := range extraJSONEntries() {
		env.Define(e.name, lang.Primitive{Name: e.name, Fn: e.fn})
	}
	installPrelude(env)
}

func asNumber(pos token.Pos, name string, v lang.Value) (float64, error) {
	n, ok := v.(lang.Number)
	if !ok {
		return 0, wisperr.TypeError(&pos, "%s expects a number, got %s", name, v.Kind())
	}
	return float64(n), nil
}

// arithmeticEntries implements `+ - * / %`, all variadic except `%`.
func arithmeticEntries() []entry {
	return []entry{
		{"+", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			sum := 0.0
			for _, a := range args {
				n, err := asNumber(pos, "+", a)
				if err != nil {
					return nil, err
				}
				sum += n
			}
			return lang.Number(sum), nil
		}},
		{"-", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) == 0 {
				return nil, wisperr.ArityErrorf(&pos, "wrong number of arguments to - (want at least 1, got 0)")
			}
			first, err := asNumber(pos, "-", args[0])
			if err != nil {
				return nil, err
			}
			if len(args) == 1 {
				return lang.Number(-first), nil
			}
			for _, a := range args[1:] {
				n, err := asNumber(pos, "-", a)
				if err != nil {
					return nil, err
				}
				first -= n
			}
			return lang.Number(first), nil
		}},
		{"*", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			product := 1.0
			for _, a := range args {
				n, err := asNumber(pos, "*", a)
				if err != nil {
					return nil, err
				}
				product *= n
			}
			return lang.Number(product), nil
		}},
		{"/", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) == 0 {
				return nil, wisperr.ArityErrorf(&pos, "wrong number of arguments to / (want at least 1, got 0)")
			}
			first, err := asNumber(pos, "/", args[0])
			if err != nil {
				return nil, err
			}
			if len(args) == 1 {
				return lang.Number(1 / first), nil
			}
			for _, a := range args[1:] {
				n, err := asNumber(pos, "/", a)
				if err != nil {
					return nil, err
				}
				first /= n
			}
			return lang.Number(first), nil
		}},
		{"%", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "%", 2, len(args))
			}
			a, err := asNumber(pos, "%", args[0])
			if err != nil {
				return nil, err
			}
			b, err := asNumber(pos, "%", args[1])
			if err != nil {
				return nil, err
			}
			// Mirrors Go's math.Mod: the result takes the sign of the
			// dividend, matching the host's own remainder operator.
			return lang.Number(math.Mod(a, b)), nil
		}},
	}
}

// comparisonEntries implements the binary comparisons `= < > <= >=`.
func comparisonEntries() []entry {
	numCompare := func(name string, cmp func(a, b float64) bool) lang.PrimitiveFunc {
		return func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, name, 2, len(args))
			}
			a, err := asNumber(pos, name, args[0])
			if err != nil {
				return nil, err
			}
			b, err := asNumber(pos, name, args[1])
			if err != nil {
				return nil, err
			}
			return lang.Bool(cmp(a, b)), nil
		}
	}
	return []entry{
		{"=", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "=", 2, len(args))
			}
			return lang.Bool(lang.Equal(args[0], args[1])), nil
		}},
		{"<", numCompare("<", func(a, b float64) bool { return a < b })},
		{">", numCompare(">", func(a, b float64) bool { return a > b })},
		{"<=", numCompare("<=", func(a, b float64) bool { return a <= b })},
		{">=", numCompare(">=", func(a, b float64) bool { return a >= b })},
	}
}

func asList(pos token.Pos, name string, v lang.Value) (lang.List, error) {
	l, ok := v.(lang.List)
	if !ok {
		return lang.List{}, wisperr.TypeError(&pos, "%s expects a list, got %s", name, v.Kind())
	}
	return l, nil
}

// listEntries implements cons, car, cdr, list.
func listEntries() []entry {
	return []entry{
		{"cons", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "cons", 2, len(args))
			}
			l, err := asList(pos, "cons", args[1])
			if err != nil {
				return nil, err
			}
			items := make([]lang.Value, 0, len(l.Items)+1)
			items = append(items, args[0])
			items = append(items, l.Items...)
			return lang.List{Items: items}, nil
		}},
		{"car", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "car", 1, len(args))
			}
			l, err := asList(pos, "car", args[0])
			if err != nil {
				return nil, err
			}
			if len(l.Items) == 0 {
				return nil, wisperr.RuntimeError(&pos, "car of empty list")
			}
			return l.Items[0], nil
		}},
		{"cdr", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "cdr", 1, len(args))
			}
			l, err := asList(pos, "cdr", args[0])
			if err != nil {
				return nil, err
			}
			if len(l.Items) == 0 {
				return lang.List{}, nil
			}
			return lang.List{Items: l.Items[1:]}, nil
		}},
		{"list", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			return lang.List{Items: append([]lang.Value{}, args...)}, nil
		}},
	}
}

// sequenceOf returns the elements of a List or Vector value.
func sequenceOf(pos token.Pos, name string, v lang.Value) ([]lang.Value, error) {
	switch s := v.(type) {
	case lang.List:
		return s.Items, nil
	case lang.Vector:
		return s.Items, nil
	default:
		return nil, wisperr.TypeError(&pos, "%s expects a list or vector, got %s", name, v.Kind())
	}
}

// vectorEntries implements vec, nth, length.
func vectorEntries() []entry {
	return []entry{
		{"vec", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "vec", 1, len(args))
			}
			items, err := sequenceOf(pos, "vec", args[0])
			if err != nil {
				return nil, err
			}
			return lang.Vector{Items: append([]lang.Value{}, items...)}, nil
		}},
		{"nth", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "nth", 2, len(args))
			}
			items, err := sequenceOf(pos, "nth", args[0])
			if err != nil {
				return nil, err
			}
			idx, err := asNumber(pos, "nth", args[1])
			if err != nil {
				return nil, err
			}
			i := int(idx)
			if i < 0 || i >= len(items) {
				return nil, wisperr.RuntimeError(&pos, "nth index %d out of bounds (length %d)", i, len(items))
			}
			return items[i], nil
		}},
		{"length", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "length", 1, len(args))
			}
			switch v := args[0].(type) {
			case lang.List:
				return lang.Number(len(v.Items)), nil
			case lang.Vector:
				return lang.Number(len(v.Items)), nil
			case lang.String:
				return lang.Number(len([]rune(string(v)))), nil
			case lang.Map:
				return lang.Number(v.Len()), nil
			default:
				return nil, wisperr.TypeError(&pos, "length expects a list, vector, string, or map, got %s", v.Kind())
			}
		}},
	}
}

// mapEntries implements get and assoc; keyword-as-accessor is handled in
// the evaluator's apply, not here.
func mapEntries() []entry {
	return []entry{
		{"get", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "get", 2, len(args))
			}
			m, ok := args[0].(lang.Map)
			if !ok {
				return nil, wisperr.TypeError(&pos, "get expects a map, got %s", args[0].Kind())
			}
			if v, ok := m.Get(args[1]); ok {
				return v, nil
			}
			return lang.Nil, nil
		}},
		{"assoc", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 3 {
				return nil, wisperr.ArityError(&pos, "assoc", 3, len(args))
			}
			m, ok := args[0].(lang.Map)
			if !ok {
				return nil, wisperr.TypeError(&pos, "assoc expects a map, got %s", args[0].Kind())
			}
			switch args[1].(type) {
			case lang.String, lang.Keyword:
			default:
				return nil, wisperr.TypeError(&pos, "map keys must be strings or keywords")
			}
			return m.Assoc(args[1], args[2]), nil
		}},
	}
}

// higherOrderEntries implements map, filter, reduce, preserving the
// input sequence's outer shape (List in -> List out, Vector in -> Vector
// out), one of the two documented options spec.md §4.6 allows.
func higherOrderEntries() []entry {
	rebuild := func(wasVector bool, items []lang.Value) lang.Value {
		if wasVector {
			return lang.Vector{Items: items}
		}
		return lang.List{Items: items}
	}
	return []entry{
		{"map", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "map", 2, len(args))
			}
			if !lang.Callable(args[0]) {
				return nil, wisperr.TypeError(&pos, "map expects a callable as its first argument, got %s", args[0].Kind())
			}
			_, isVector := args[1].(lang.Vector)
			items, err := sequenceOf(pos, "map", args[1])
			if err != nil {
				return nil, err
			}
			out := make([]lang.Value, len(items))
			for i, it := range items {
				v, err := lang.Apply(args[0], []lang.Value{it}, pos)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return rebuild(isVector, out), nil
		}},
		{"filter", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "filter", 2, len(args))
			}
			if !lang.Callable(args[0]) {
				return nil, wisperr.TypeError(&pos, "filter expects a callable as its first argument, got %s", args[0].Kind())
			}
			_, isVector := args[1].(lang.Vector)
			items, err := sequenceOf(pos, "filter", args[1])
			if err != nil {
				return nil, err
			}
			var out []lang.Value
			for _, it := range items {
				keep, err := lang.Apply(args[0], []lang.Value{it}, pos)
				if err != nil {
					return nil, err
				}
				if lang.Truthy(keep) {
					out = append(out, it)
				}
			}
			return rebuild(isVector, out), nil
		}},
		{"reduce", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 && len(args) != 3 {
				return nil, wisperr.ArityErrorf(&pos, "wrong number of arguments to reduce (want 2 or 3, got %d)", len(args))
			}
			if !lang.Callable(args[0]) {
				return nil, wisperr.TypeError(&pos, "reduce expects a callable as its first argument, got %s", args[0].Kind())
			}
			var items []lang.Value
			var acc lang.Value
			var err error
			if len(args) == 3 {
				acc = args[1]
				items, err = sequenceOf(pos, "reduce", args[2])
			} else {
				items, err = sequenceOf(pos, "reduce", args[1])
				if err == nil {
					if len(items) == 0 {
						return nil, wisperr.RuntimeError(&pos, "reduce of empty sequence with no initial value")
					}
					acc, items = items[0], items[1:]
				}
			}
			if err != nil {
				return nil, err
			}
			for _, it := range items {
				acc, err = lang.Apply(args[0], []lang.Value{acc, it}, pos)
				if err != nil {
					return nil, err
				}
			}
			return acc, nil
		}},
	}
}

// ioEntries implements print and str.
func ioEntries(printSink func(string)) []entry {
	return []entry{
		{"print", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			s := ""
			for i, a := range args {
				if i > 0 {
					s += " "
				}
				s += lang.Display(a)
			}
			printSink(s)
			return lang.Nil, nil
		}},
		{"str", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			s := ""
			for _, a := range args {
				s += lang.Display(a)
			}
			return lang.String(s), nil
		}},
	}
}

// predicateEntries implements the type predicates and type-of.
func predicateEntries() []entry {
	is := func(name string, pred func(lang.Value) bool) entry {
		return entry{name, func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, name, 1, len(args))
			}
			return lang.Bool(pred(args[0])), nil
		}}
	}
	return []entry{
		is("list?", func(v lang.Value) bool { return v.Kind() == lang.KindList }),
		is("vector?", func(v lang.Value) bool { return v.Kind() == lang.KindVector }),
		is("map?", func(v lang.Value) bool { return v.Kind() == lang.KindMap }),
		is("fn?", func(v lang.Value) bool { return v.Kind() == lang.KindClosure || v.Kind() == lang.KindPrimitive }),
		is("nil?", func(v lang.Value) bool { return v.Kind() == lang.KindNil }),
		is("number?", func(v lang.Value) bool { return v.Kind() == lang.KindNumber }),
		is("string?", func(v lang.Value) bool { return v.Kind() == lang.KindString }),
		is("true?", func(v lang.Value) bool { b, ok := v.(lang.Bool); return ok && bool(b) }),
		is("false?", func(v lang.Value) bool { b, ok := v.(lang.Bool); return ok && !bool(b) }),
		{"type-of", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "type-of", 1, len(args))
			}
			switch args[0].Kind() {
			case lang.KindNil:
				return lang.String("nil"), nil
			case lang.KindNumber:
				return lang.String("number"), nil
			case lang.KindString:
				return lang.String("string"), nil
			case lang.KindBool:
				return lang.String("boolean"), nil
			case lang.KindList:
				return lang.String("list"), nil
			case lang.KindVector:
				return lang.String("vector"), nil
			case lang.KindMap:
				return lang.String("map"), nil
			case lang.KindClosure, lang.KindPrimitive:
				return lang.String("fn"), nil
			case lang.KindKeyword:
				return lang.String("keyword"), nil
			default:
				return lang.String("unknown"), nil
			}
		}},
	}
}
