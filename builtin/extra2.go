package builtin

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/wisplang/wisp/lang"
	"github.com/wisplang/wisp/token"
	"github.com/wisplang/wisp/wisperr"
)

// extraRegexpEntries supplements the primitive library with pattern
// matching, grounded on lisp/lisplib/libregexp/libregexp.go's
// regexp-compile/regexp-match? builtins. There is no opaque "compiled
// regexp" value in this language's closed Value union (spec.md §3 has no
// native-handle kind), so each call compiles its pattern directly instead
// of carrying a separate regexp-compile step and a handle value.
func extraRegexpEntries() []entry {
	asString := func(pos token.Pos, name string, v lang.Value) (string, error) {
		s, ok := v.(lang.String)
		if !ok {
			return "", wisperr.TypeError(&pos, "%s expects a string, got %s", name, v.Kind())
		}
		return string(s), nil
	}
	compile := func(pos token.Pos, name, pattern string) (*regexp.Regexp, error) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, wisperr.RuntimeError(&pos, "%s: invalid pattern: %v", name, err)
		}
		return re, nil
	}
	return []entry{
		{"regexp-match?", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 2 {
				return nil, wisperr.ArityError(&pos, "regexp-match?", 2, len(args))
			}
			pattern, err := asString(pos, "regexp-match?", args[0])
			if err != nil {
				return nil, err
			}
			text, err := asString(pos, "regexp-match?", args[1])
			if err != nil {
				return nil, err
			}
			re, err := compile(pos, "regexp-match?", pattern)
			if err != nil {
				return nil, err
			}
			return lang.Bool(re.MatchString(text)), nil
		}},
		{"regexp-replace", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 3 {
				return nil, wisperr.ArityError(&pos, "regexp-replace", 3, len(args))
			}
			pattern, err := asString(pos, "regexp-replace", args[0])
			if err != nil {
				return nil, err
			}
			text, err := asString(pos, "regexp-replace", args[1])
			if err != nil {
				return nil, err
			}
			repl, err := asString(pos, "regexp-replace", args[2])
			if err != nil {
				return nil, err
			}
			re, err := compile(pos, "regexp-replace", pattern)
			if err != nil {
				return nil, err
			}
			return lang.String(re.ReplaceAllString(text, repl)), nil
		}},
	}
}

// extraTimeEntries supplements the primitive library with wall-clock
// access, grounded on lisp/lisplib/libtime/libtime.go's (time) builtin.
// The teacher represents an instant as a wrapped time.Time LVal; here an
// instant is just its Unix-epoch seconds as an ordinary Number, since
// spec.md's Value union has no native-handle kind for time.Time itself.
func extraTimeEntries() []entry {
	return []entry{
		{"time-now", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 0 {
				return nil, wisperr.ArityError(&pos, "time-now", 0, len(args))
			}
			return lang.Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		}},
	}
}

// extraJSONEntries supplements the primitive library with JSON codec
// functions, grounded on lisp/lisplib/libjson/json.go's json:encode/
// json:decode, dropping that file's symbolic true/false/null sentinels in
// favor of this language's own Bool/Nil values.
func extraJSONEntries() []entry {
	return []entry{
		{"json-encode", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "json-encode", 1, len(args))
			}
			b, err := json.Marshal(valueToJSON(args[0]))
			if err != nil {
				return nil, wisperr.RuntimeError(&pos, "json-encode: %v", err)
			}
			return lang.String(b), nil
		}},
		{"json-decode", func(pos token.Pos, args []lang.Value) (lang.Value, error) {
			if len(args) != 1 {
				return nil, wisperr.ArityError(&pos, "json-decode", 1, len(args))
			}
			s, ok := args[0].(lang.String)
			if !ok {
				return nil, wisperr.TypeError(&pos, "json-decode expects a string, got %s", args[0].Kind())
			}
			var v interface{}
			if err := json.Unmarshal([]byte(s), &v); err != nil {
				return nil, wisperr.RuntimeError(&pos, "json-decode: %v", err)
			}
			return jsonToValue(v), nil
		}},
	}
}

func valueToJSON(v lang.Value) interface{} {
	switch x := v.(type) {
	case lang.Number:
		return float64(x)
	case lang.String:
		return string(x)
	case lang.Bool:
		return bool(x)
	case lang.NilValue:
		return nil
	case lang.Keyword:
		return string(x)
	case lang.List:
		out := make([]interface{}, len(x.Items))
		for i, item := range x.Items {
			out[i] = valueToJSON(item)
		}
		return out
	case lang.Vector:
		out := make([]interface{}, len(x.Items))
		for i, item := range x.Items {
			out[i] = valueToJSON(item)
		}
		return out
	case lang.Map:
		out := make(map[string]interface{}, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			out[jsonKeyString(k)] = valueToJSON(val)
		}
		return out
	default:
		return v.String()
	}
}

func jsonKeyString(v lang.Value) string {
	switch x := v.(type) {
	case lang.String:
		return string(x)
	case lang.Keyword:
		return strings.TrimPrefix(string(x), ":")
	default:
		return v.String()
	}
}

func jsonToValue(v interface{}) lang.Value {
	switch x := v.(type) {
	case nil:
		return lang.Nil
	case bool:
		return lang.Bool(x)
	case float64:
		return lang.Number(x)
	case string:
		return lang.String(x)
	case []interface{}:
		items := make([]lang.Value, len(x))
		for i, e := range x {
			items[i] = jsonToValue(e)
		}
		return lang.Vector{Items: items}
	case map[string]interface{}:
		keys := make([]lang.Value, 0, len(x))
		vals := make([]lang.Value, 0, len(x))
		for k, e := range x {
			keys = append(keys, lang.String(k))
			vals = append(vals, jsonToValue(e))
		}
		return lang.NewMap(keys, vals)
	default:
		return lang.Nil
	}
}
