package builtin

import (
	"math"
	"strings"

	"github.com/wisplang/wisp/lang"
	"github.com/wisplang/wisp/token"
	"github.com/wisplang/wisp/wisperr"
)

// extraMathEntries supplements spec.md §4.6's arithmetic with a handful
// of ordinary functions instead of a loadable module, since spec.md's
// non-goals exclude a module/file-loading system entirely (SPEC_FULL.md
// §4). Grounded on lisp/lisplib/libmath/libmath.go's ceil/floor/sqrt/
// exp/ln/log, stripped of that file's LoadPackage/DefinePackage
// machinery and registered directly as root-environment primitives.
func extraMathEntries() []entry {
	unary := func(name string, fn func(float64) float64) entry {
		return entry{name, func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, name, 1, len(args))
			}
			n, err := asNumber(pos, name, args[0])
			if err != nil {
				return nil, err
			}
			return lang.Number(fn(n)), nil
		}}
	}
	return []entry{
		unary("ceil", math.Ceil),
		unary("floor", math.Floor),
		unary("sqrt", math.Sqrt),
		unary("exp", math.Exp),
		unary("ln", math.Log),
		{"log", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "log", 2, len(args))
			}
			base, err := asNumber(pos, "log", args[0])
			if err != nil {
				return nil, err
			}
			x, err := asNumber(pos, "log", args[1])
			if err != nil {
				return nil, err
			}
			return lang.Number(math.Log(x) / math.Log(base)), nil
		}},
	}
}

// extraMathConstants supplements the root environment with inf/-inf,
// grounded on the same libmath.go's PutGlobal("inf", ...) calls.
func extraMathConstants(env *lang.Env) {
	env.Define("inf", lang.Number(math.Inf(1)))
	env.Define("-inf", lang.Number(math.Inf(-1)))
}

// extraStringEntries supplements string handling beyond str/length,
// grounded on lisp/lisplib/libstring/libstring.go's string-package
// builtins (format's positional-argument idea generalized into join,
// plus ordinary strings-package wrappers for upper-case/lower-case/
// split/trim that the teacher's string package doesn't itself carry but
// its sibling packages establish the pattern for).
func extraStringEntries() []entry {
	asString := func(pos token.Pos, name string, v lang.Value) (string, error) {
		s, ok := v.(lang.String)
		if !ok {
			return "", wisperr.TypeError(&pos, "%s expects a string, got %s", name, v.Kind())
		}
		return string(s), nil
	}
	return []entry{
		{"upper-case", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "upper-case", 1, len(args))
			}
			s, err := asString(pos, "upper-case", args[0])
			if err != nil {
				return nil, err
			}
			return lang.String(strings.ToUpper(s)), nil
		}},
		{"lower-case", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "lower-case", 1, len(args))
			}
			s, err := asString(pos, "lower-case", args[0])
			if err != nil {
				return nil, err
			}
			return lang.String(strings.ToLower(s)), nil
		}},
		{"trim", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "trim", 1, len(args))
			}
			s, err := asString(pos, "trim", args[0])
			if err != nil {
				return nil, err
			}
			return lang.String(strings.TrimSpace(s)), nil
		}},
		{"split", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "split", 2, len(args))
			}
			s, err := asString(pos, "split", args[0])
			if err != nil {
				return nil, err
			}
			sep, err := asString(pos, "split", args[1])
			if err != nil {
				return nil, err
			}
			parts := strings.Split(s, sep)
			items := make([]lang.Value, len(parts))
			for i, p := range parts {
				items[i] = lang.String(p)
			}
			return lang.List{Items: items}, nil
		}},
		{"join", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "join", 2, len(args))
			}
			items, err := sequenceOf(pos, "join", args[0])
			if err != nil {
				return nil, err
			}
			sep, err := asString(pos, "join", args[1])
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(items))
			for i, it := range items {
				parts[i] = lang.Display(it)
			}
			return lang.String(strings.Join(parts, sep)), nil
		}},
	}
}
