package ast

import (
	"strconv"
	"strings"
)

// Print renders expr back into canonical Wisp source text: one space
// between sibling forms, reader-macro prefixes collapsed onto their
// operand, and numbers/strings/keywords printed the way the lexer would
// re-read them. It never evaluates expr, so it prints macro calls,
// special forms, and quoted data identically — this is a source
// formatter, not a value printer (see lang.Value.String/Display for
// that).
func Print(expr Expr) string {
	var sb strings.Builder
	writeExpr(&sb, expr)
	return sb.String()
}

func writeExpr(sb *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *Literal:
		writeLiteral(sb, e)
	case *Symbol:
		sb.WriteString(e.Name)
	case *List:
		sb.WriteByte('(')
		writeItems(sb, e.Items)
		sb.WriteByte(')')
	case *Vector:
		sb.WriteByte('[')
		writeItems(sb, e.Items)
		sb.WriteByte(']')
	case *Map:
		sb.WriteByte('{')
		for i := range e.Keys {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeExpr(sb, e.Keys[i])
			sb.WriteByte(' ')
			writeExpr(sb, e.Vals[i])
		}
		sb.WriteByte('}')
	case *Quote:
		sb.WriteByte('\'')
		writeExpr(sb, e.X)
	case *Quasiquote:
		sb.WriteByte('`')
		writeExpr(sb, e.X)
	case *Unquote:
		sb.WriteByte('~')
		writeExpr(sb, e.X)
	case *Splice:
		sb.WriteString("~@")
		writeExpr(sb, e.X)
	}
}

func writeItems(sb *strings.Builder, items []Expr) {
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeExpr(sb, item)
	}
}

func writeLiteral(sb *strings.Builder, l *Literal) {
	switch l.Kind {
	case LitNumber:
		sb.WriteString(strconv.FormatFloat(l.Num, 'g', -1, 64))
	case LitString:
		sb.WriteString(strconv.Quote(l.Str))
	case LitBool:
		if l.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case LitNil:
		sb.WriteString("nil")
	case LitKeyword:
		sb.WriteString(l.Str)
	}
}
