// Package lang implements the runtime data model, environment chain,
// evaluator, and macro expander described in spec.md §3-§5. The four
// concerns share one package because Value and Env are mutually
// referential (a Closure captures an *Env; an Env stores Values) and the
// macro expander must call back into Eval — splitting them would only
// create an import cycle, so lang follows the same single-package shape
// the interpreter it's grounded on uses for its own LVal/LEnv/Eval/macro
// code.
package lang

import (
	"fmt"
	"strconv"

	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/token"
)

// Kind identifies the dynamic type of a Value, letting callers do
// exhaustive case analysis instead of ad-hoc type assertions.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNil
	KindKeyword
	KindList
	KindVector
	KindMap
	KindClosure
	KindPrimitive
)

var kindNames = [...]string{
	KindNumber:    "number",
	KindString:    "string",
	KindBool:      "bool",
	KindNil:       "nil",
	KindKeyword:   "keyword",
	KindList:      "list",
	KindVector:    "vector",
	KindMap:       "map",
	KindClosure:   "function",
	KindPrimitive: "function",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is any runtime datum in the language: the closed set of shapes
// that def, function calls, and quoting can ever produce. Implementations
// are held by value (structs, not pointers) except for the shared spine
// of Lists/Vectors/Maps, so equality and hashing (used by Map keys) can be
// computed structurally.
type Value interface {
	Kind() Kind
	String() string
	valueNode()
}

// Number is the language's sole numeric type, matching spec.md §3's
// "a single numeric kind (float64-backed)".
type Number float64

func (Number) Kind() Kind      { return KindNumber }
func (n Number) String() string { return formatNumber(float64(n)) }
func (Number) valueNode()      {}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// String is an immutable UTF-8 text value. Its String() method returns
// the quoted structural form used inside a larger print (spec.md §6.4);
// Display returns the raw, unquoted top-level form.
type String string

func (String) Kind() Kind       { return KindString }
func (s String) String() string { return strconv.Quote(string(s)) }
func (String) valueNode()       {}

// Display renders v the way the top-level value line, print, and str
// render it: strings appear as raw text, everything else exactly as
// String() renders it (spec.md §6.4's "quotes only when inside a larger
// structural print" rule).
func Display(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return v.String()
}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) valueNode() {}

// NilValue is the single absent-value constant.
type NilValue struct{}

func (NilValue) Kind() Kind      { return KindNil }
func (NilValue) String() string { return "nil" }
func (NilValue) valueNode()     {}

// Nil is the shared instance of NilValue; every absent value in the
// language is this exact value; comparisons may use ==.
var Nil = NilValue{}

// Keyword is a self-evaluating identifier written as :name; keywords also
// act as one-argument accessor functions on Maps (spec.md §4.6).
type Keyword string

func (Keyword) Kind() Kind      { return KindKeyword }
func (k Keyword) String() string { return string(k) }
func (Keyword) valueNode()      {}

// List is an immutable ordered sequence of any values, spec.md's cons-list
// analog implemented as a Go slice since the language has no mutation.
type List struct {
	Items []Value
}

func (List) Kind() Kind { return KindList }
func (l List) String() string {
	return "(" + joinValues(l.Items) + ")"
}
func (List) valueNode() {}

// Vector is an immutable, indexable ordered sequence.
type Vector struct {
	Items []Value
}

func (Vector) Kind() Kind { return KindVector }
func (v Vector) String() string {
	return "[" + joinValues(v.Items) + "]"
}
func (Vector) valueNode() {}

func joinValues(vs []Value) string {
	s := ""
	for i, v := range vs {
		if i > 0 {
			s += " "
		}
		s += v.String()
	}
	return s
}

// mapEntry is one key/value pair of a Map, kept in insertion order so
// printing and iteration are deterministic (spec.md §3).
type mapEntry struct {
	key Value
	val Value
}

// Map is an immutable ordered association from Value keys to Value
// values. Keys are compared by mapKey, spec.md §3's "value equality,
// independent of insertion order" rule for keys of the same shape.
type Map struct {
	entries []mapEntry
}

// NewMap builds a Map from parallel key/value slices, preserving their
// order and keeping the last value bound to a repeated key.
func NewMap(keys, vals []Value) Map {
	m := Map{}
	for i := range keys {
		m = m.assoc(keys[i], vals[i])
	}
	return m
}

func (Map) Kind() Kind { return KindMap }
func (m Map) String() string {
	s := "{"
	for i, e := range m.entries {
		if i > 0 {
			s += " "
		}
		s += e.key.String() + " " + e.val.String()
	}
	return s + "}"
}
func (Map) valueNode() {}

// Get looks up key in m, returning (value, true) if present.
func (m Map) Get(key Value) (Value, bool) {
	k := mapKey(key)
	for _, e := range m.entries {
		if mapKey(e.key) == k {
			return e.val, true
		}
	}
	return nil, false
}

// Assoc returns a new Map with key bound to val, leaving m unmodified —
// Maps are immutable per spec.md's "no mutable collections" non-goal.
func (m Map) Assoc(key, val Value) Map {
	return m.assoc(key, val)
}

func (m Map) assoc(key, val Value) Map {
	k := mapKey(key)
	next := Map{entries: make([]mapEntry, len(m.entries), len(m.entries)+1)}
	copy(next.entries, m.entries)
	for i, e := range next.entries {
		if mapKey(e.key) == k {
			next.entries[i].val = val
			return next
		}
	}
	next.entries = append(next.entries, mapEntry{key: key, val: val})
	return next
}

// Len reports the number of entries in m.
func (m Map) Len() int { return len(m.entries) }

// Keys returns the map's keys in insertion order.
func (m Map) Keys() []Value {
	ks := make([]Value, len(m.entries))
	for i, e := range m.entries {
		ks[i] = e.key
	}
	return ks
}

// mapKey renders a Value into a comparable Go value usable as a map key,
// so Map lookups use structural value equality rather than identity.
func mapKey(v Value) string {
	return fmt.Sprintf("%d:%s", v.Kind(), v.String())
}

// Closure is a user-defined function created by fn/defn, closing over the
// environment active at its definition site.
type Closure struct {
	Name   string // empty for anonymous fn; set by defn for error messages
	Params []string
	Rest   string // name of the "& rest" parameter, or "" if none
	Body   []ast.Expr
	Env    *Env
	DefPos token.Pos
}

func (Closure) Kind() Kind { return KindClosure }
func (c Closure) String() string {
	return "#<fn>"
}
func (Closure) valueNode() {}

// PrimitiveFunc is the Go implementation behind a Primitive value.
type PrimitiveFunc func(pos token.Pos, args []Value) (Value, error)

// Primitive is a builtin function implemented in Go, exposed as an
// ordinary callable Value (spec.md §4.6).
type Primitive struct {
	Name string
	Fn   PrimitiveFunc
}

func (Primitive) Kind() Kind { return KindPrimitive }
func (p Primitive) String() string {
	return fmt.Sprintf("#<primitive:%s>", p.Name)
}
func (Primitive) valueNode() {}

// Truthy implements spec.md's truthiness rule: everything is truthy
// except false and nil.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case NilValue:
		return false
	default:
		return true
	}
}

// Callable reports whether v can appear in the function position of a
// call form.
func Callable(v Value) bool {
	switch v.(type) {
	case Closure, Primitive, Keyword:
		return true
	default:
		return false
	}
}
