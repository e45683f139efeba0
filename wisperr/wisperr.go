// Package wisperr defines the error taxonomy surfaced by the Wisp core, as
// specified in spec.md §7. Every stage of the pipeline (lexer, parser,
// evaluator, macro expander, primitive library) returns an error built by
// one of these constructors rather than an opaque error, so a host can
// label an OutputLine by kind (via KindOf) without inspecting the message
// text.
package wisperr

import (
	"fmt"

	"github.com/wisplang/wisp/token"
)

// Kind identifies which of the seven error categories an error belongs to.
type Kind int

const (
	Lex Kind = iota
	Parse
	UnboundSymbol
	Type
	Arity
	Macro
	Runtime
)

var kindNames = [...]string{
	Lex:           "lex error",
	Parse:         "parse error",
	UnboundSymbol: "unbound symbol",
	Type:          "type error",
	Arity:         "arity error",
	Macro:         "macro error",
	Runtime:       "runtime error",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "error"
	}
	return kindNames[k]
}

// wispError is the concrete implementation backing every exported error
// constructor below. Kept unexported so callers only ever see the plain
// error interface, reading its kind and position through KindOf and PosOf.
type wispError struct {
	kind Kind
	pos  *token.Pos
	msg  string
}

func (e *wispError) Error() string {
	if e.pos != nil {
		return fmt.Sprintf("%s: %s", e.pos, e.msg)
	}
	return e.msg
}

// Kind returns the error category, letting a host adapter tag an output
// line without string-matching the message.
func (e *wispError) Kind() Kind { return e.kind }

// Pos returns the source position associated with the error, or nil if
// none is available.
func (e *wispError) Pos() *token.Pos { return e.pos }

func newf(kind Kind, pos *token.Pos, format string, args ...interface{}) *wispError {
	return &wispError{kind: kind, pos: pos, msg: fmt.Sprintf(format, args...)}
}

// LexError reports a malformed token or unterminated string literal.
func LexError(pos token.Pos, format string, args ...interface{}) error {
	return newf(Lex, &pos, format, args...)
}

// ParseError reports an unexpected token, unexpected end of input, or
// mismatched delimiter.
func ParseError(pos token.Pos, format string, args ...interface{}) error {
	return newf(Parse, &pos, format, args...)
}

// UnboundSymbolError reports a lookup of an identifier absent from every
// enclosing environment.
func UnboundSymbolError(pos *token.Pos, name string) error {
	return newf(UnboundSymbol, pos, "undefined symbol: %s", name)
}

// TypeError reports an argument of the wrong kind to a primitive or
// operator.
func TypeError(pos *token.Pos, format string, args ...interface{}) error {
	return newf(Type, pos, format, args...)
}

// ArityError reports a wrong number of arguments to a closure or
// primitive.
func ArityError(pos *token.Pos, name string, want, got int) error {
	return newf(Arity, pos, "wrong number of arguments to %s (want %d, got %d)", name, want, got)
}

// ArityErrorf reports an arity mismatch whose expected count isn't a
// single number (e.g. "at least N").
func ArityErrorf(pos *token.Pos, format string, args ...interface{}) error {
	return newf(Arity, pos, format, args...)
}

// MacroError reports a malformed macro form, a splice of a non-sequence,
// or an expansion depth overflow.
func MacroError(pos *token.Pos, format string, args ...interface{}) error {
	return newf(Macro, pos, format, args...)
}

// RuntimeError is the catch-all for user-triggered failures that aren't
// better described by one of the more specific kinds.
func RuntimeError(pos *token.Pos, format string, args ...interface{}) error {
	return newf(Runtime, pos, format, args...)
}

// KindOf extracts the Kind from err if it is one of this package's error
// types, and reports whether it succeeded.
func KindOf(err error) (Kind, bool) {
	if we, ok := err.(*wispError); ok {
		return we.kind, true
	}
	return 0, false
}

// PosOf extracts the source position from err if it is one of this
// package's error types and carries one.
func PosOf(err error) (token.Pos, bool) {
	we, ok := err.(*wispError)
	if !ok || we.pos == nil {
		return token.Pos{}, false
	}
	return *we.pos, true
}
