// Package ast defines the uniform expression tree produced by the parser
// and consumed by the evaluator, as specified in spec.md §3. Every surface
// construct is a shape of "list of expressions" or a literal; special forms
// such as def, fn, let, and if are recognized later, by the evaluator, not
// here.
package ast

import "github.com/wisplang/wisp/token"

// Expr is any node in the parsed expression tree. Expressions are
// immutable once parsed and carry optional source-position metadata used
// for error messages.
type Expr interface {
	Pos() token.Pos
	exprNode()
}

// LitKind distinguishes the scalar literal kinds a Literal can hold.
type LitKind int

const (
	LitNumber LitKind = iota
	LitString
	LitBool
	LitNil
	LitKeyword
)

// Literal is a scalar constant: a number, string, boolean, nil, or a
// keyword written as a self-valued identifier prefixed with ':'.
type Literal struct {
	Kind LitKind
	Num  float64
	Str  string
	Bool bool
	P    token.Pos
}

func (l *Literal) Pos() token.Pos { return l.P }
func (*Literal) exprNode()        {}

// Symbol is an identifier reference, resolved by environment lookup at
// evaluation time.
type Symbol struct {
	Name string
	P    token.Pos
}

func (s *Symbol) Pos() token.Pos { return s.P }
func (*Symbol) exprNode()        {}

// List is a parenthesized, ordered sequence of expressions: a function
// call, a special form invocation, or a macro invocation, disambiguated by
// the evaluator, never by the parser.
type List struct {
	Items []Expr
	P     token.Pos
}

func (l *List) Pos() token.Pos { return l.P }
func (*List) exprNode()        {}

// Vector is a bracketed, ordered sequence of expressions.
type Vector struct {
	Items []Expr
	P     token.Pos
}

func (v *Vector) Pos() token.Pos { return v.P }
func (*Vector) exprNode()        {}

// Map is a braced sequence of (key, value) expression pairs, in source
// order.
type Map struct {
	Keys []Expr
	Vals []Expr
	P    token.Pos
}

func (m *Map) Pos() token.Pos { return m.P }
func (*Map) exprNode()        {}

// Quote holds a single sub-expression to be converted to data without
// evaluation.
type Quote struct {
	X Expr
	P token.Pos
}

func (q *Quote) Pos() token.Pos { return q.P }
func (*Quote) exprNode()        {}

// Quasiquote holds a single sub-expression to be converted to data with
// Unquote/Splice escapes resolved.
type Quasiquote struct {
	X Expr
	P token.Pos
}

func (q *Quasiquote) Pos() token.Pos { return q.P }
func (*Quasiquote) exprNode()        {}

// Unquote holds a single sub-expression to be evaluated in place; valid
// only inside a Quasiquote.
type Unquote struct {
	X Expr
	P token.Pos
}

func (u *Unquote) Pos() token.Pos { return u.P }
func (*Unquote) exprNode()        {}

// Splice holds a single sub-expression to be evaluated and flattened into
// the enclosing collection; valid only inside a Quasiquote.
type Splice struct {
	X Expr
	P token.Pos
}

func (s *Splice) Pos() token.Pos { return s.P }
func (*Splice) exprNode()        {}
