// Package parser implements the recursive-descent parser specified in
// spec.md §4.2. It consumes the flat token stream produced by lexer and
// builds the uniform expression tree defined in package ast, using one
// token of lookahead.
//
// Unlike a typical single-error parser, Parse collects every parse error it
// finds and continues past the offending token, so one malformed form does
// not blank out the rest of the program (spec.md §4.2). Callers that want
// REPL-like abort-on-first-error behavior can simply check len(errs) > 0
// before using the returned expressions.
package parser

import (
	"strconv"
	"strings"

	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/lexer"
	"github.com/wisplang/wisp/token"
	"github.com/wisplang/wisp/wisperr"
)

// Parser holds the token-stream state for one parse.
type Parser struct {
	lex  *lexer.Lexer
	curr token.Token
	peek token.Token

	errs []error
}

// New returns a Parser reading tokens lexed from src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance() // prime peek
	p.advance() // curr = first token, peek = second
	return p
}

// Parse lexes and parses source, returning every top-level expression it
// could recover along with every parse error encountered. On success errs
// is nil.
func Parse(src string) ([]ast.Expr, []error) {
	p := New(src)
	return p.ParseProgram()
}

// IsIncomplete reports whether errs consists solely of "unterminated ..."
// parse errors, meaning the source ended in the middle of an open
// list/vector/map rather than containing a genuine syntax mistake. A REPL
// host uses this to tell "keep reading more lines" apart from "report this
// error now".
func IsIncomplete(errs []error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		kind, ok := wisperr.KindOf(err)
		if !ok || kind != wisperr.Parse || !strings.Contains(err.Error(), "unterminated") {
			return false
		}
	}
	return true
}

// ParseProgram parses the entire token stream as a sequence of top-level
// expressions (spec.md's `program := expr*`).
func (p *Parser) ParseProgram() ([]ast.Expr, []error) {
	var exprs []ast.Expr
	for p.curr.Kind != token.EOF {
		expr, ok := p.parseExpr()
		if ok {
			exprs = append(exprs, expr)
		}
	}
	return exprs, p.errs
}

func (p *Parser) advance() token.Token {
	old := p.curr
	p.curr = p.peek
	p.peek = p.lex.Next()
	return old
}

func (p *Parser) addErrorf(pos token.Pos, format string, args ...interface{}) {
	p.errs = append(p.errs, wisperr.ParseError(pos, format, args...))
}

// parseExpr parses a single expr and reports whether it produced a usable
// node (false means the error was recorded and the caller should move on).
func (p *Parser) parseExpr() (ast.Expr, bool) {
	switch p.curr.Kind {
	case token.NUMBER:
		return p.parseNumber()
	case token.STRING:
		return p.parseString()
	case token.KEYWORD:
		return p.parseKeyword()
	case token.TRUE:
		tok := p.advance()
		return &ast.Literal{Kind: ast.LitBool, Bool: true, P: tok.Pos}, true
	case token.FALSE:
		tok := p.advance()
		return &ast.Literal{Kind: ast.LitBool, Bool: false, P: tok.Pos}, true
	case token.NIL:
		tok := p.advance()
		return &ast.Literal{Kind: ast.LitNil, P: tok.Pos}, true
	case token.SYMBOL:
		tok := p.advance()
		return &ast.Symbol{Name: tok.Text, P: tok.Pos}, true
	case token.LPAREN:
		return p.parseList()
	case token.LBRACKET:
		return p.parseVector()
	case token.LBRACE:
		return p.parseMap()
	case token.QUOTE:
		return p.parseWrapped(token.QUOTE, func(x ast.Expr, pos token.Pos) ast.Expr {
			return &ast.Quote{X: x, P: pos}
		})
	case token.QUASIQUOTE:
		return p.parseWrapped(token.QUASIQUOTE, func(x ast.Expr, pos token.Pos) ast.Expr {
			return &ast.Quasiquote{X: x, P: pos}
		})
	case token.UNQUOTE:
		return p.parseWrapped(token.UNQUOTE, func(x ast.Expr, pos token.Pos) ast.Expr {
			return &ast.Unquote{X: x, P: pos}
		})
	case token.SPLICE:
		return p.parseWrapped(token.SPLICE, func(x ast.Expr, pos token.Pos) ast.Expr {
			return &ast.Splice{X: x, P: pos}
		})
	case token.RPAREN, token.RBRACKET, token.RBRACE:
		tok := p.advance()
		p.addErrorf(tok.Pos, "unexpected closing delimiter %q", tok.Text)
		return nil, false
	case token.ERROR:
		tok := p.advance()
		p.addErrorf(tok.Pos, "%s", tok.Text)
		return nil, false
	case token.EOF:
		p.addErrorf(p.curr.Pos, "unexpected end of input")
		return nil, false
	default:
		tok := p.advance()
		p.addErrorf(tok.Pos, "unexpected token %s", tok.Kind)
		return nil, false
	}
}

func (p *Parser) parseNumber() (ast.Expr, bool) {
	tok := p.advance()
	n, err := parseNumberText(tok.Text)
	if err != nil {
		p.addErrorf(tok.Pos, "invalid number literal %q: %v", tok.Text, err)
		return nil, false
	}
	return &ast.Literal{Kind: ast.LitNumber, Num: n, P: tok.Pos}, true
}

func parseNumberText(text string) (float64, error) {
	neg := false
	rest := text
	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}
	var v float64
	var err error
	switch {
	case strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X"):
		i, e := strconv.ParseInt(rest[2:], 16, 64)
		v, err = float64(i), e
	case strings.HasPrefix(rest, "0o") || strings.HasPrefix(rest, "0O"):
		i, e := strconv.ParseInt(rest[2:], 8, 64)
		v, err = float64(i), e
	default:
		v, err = strconv.ParseFloat(rest, 64)
	}
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

func (p *Parser) parseString() (ast.Expr, bool) {
	tok := p.advance()
	s, err := unquoteString(tok.Text)
	if err != nil {
		p.addErrorf(tok.Pos, "invalid string literal: %v", err)
		return nil, false
	}
	return &ast.Literal{Kind: ast.LitString, Str: s, P: tok.Pos}, true
}

// unquoteString interprets the backslash escapes spec.md §4.1 defines:
// \n \t \r \\ \" ; any other escaped character stands for itself.
func unquoteString(text string) (string, error) {
	// text is wrapped in double quotes.
	body := text[1 : len(text)-1]
	var sb strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		i++
		if i >= len(runes) {
			sb.WriteRune('\\')
			break
		}
		switch runes[i] {
		case 'n':
			sb.WriteRune('\n')
		case 't':
			sb.WriteRune('\t')
		case 'r':
			sb.WriteRune('\r')
		case '\\':
			sb.WriteRune('\\')
		case '"':
			sb.WriteRune('"')
		default:
			sb.WriteRune(runes[i])
		}
	}
	return sb.String(), nil
}

func (p *Parser) parseKeyword() (ast.Expr, bool) {
	tok := p.advance()
	return &ast.Literal{Kind: ast.LitKeyword, Str: tok.Text, P: tok.Pos}, true
}

func (p *Parser) parseWrapped(kind token.Kind, wrap func(ast.Expr, token.Pos) ast.Expr) (ast.Expr, bool) {
	tok := p.advance()
	if p.curr.Kind == token.EOF {
		p.addErrorf(tok.Pos, "unexpected end of input after %s", tok.Text)
		return nil, false
	}
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return wrap(x, tok.Pos), true
}

func (p *Parser) parseList() (ast.Expr, bool) {
	open := p.advance() // consume '('
	var items []ast.Expr
	for {
		if p.curr.Kind == token.EOF {
			p.addErrorf(open.Pos, "unterminated list starting at %s", open.Pos)
			return nil, false
		}
		if p.curr.Kind == token.RPAREN {
			p.advance()
			return &ast.List{Items: items, P: open.Pos}, true
		}
		x, ok := p.parseExpr()
		if !ok {
			continue
		}
		items = append(items, x)
	}
}

func (p *Parser) parseVector() (ast.Expr, bool) {
	open := p.advance() // consume '['
	var items []ast.Expr
	for {
		if p.curr.Kind == token.EOF {
			p.addErrorf(open.Pos, "unterminated vector starting at %s", open.Pos)
			return nil, false
		}
		if p.curr.Kind == token.RBRACKET {
			p.advance()
			return &ast.Vector{Items: items, P: open.Pos}, true
		}
		x, ok := p.parseExpr()
		if !ok {
			continue
		}
		items = append(items, x)
	}
}

func (p *Parser) parseMap() (ast.Expr, bool) {
	open := p.advance() // consume '{'
	var keys, vals []ast.Expr
	for {
		if p.curr.Kind == token.EOF {
			p.addErrorf(open.Pos, "unterminated map starting at %s", open.Pos)
			return nil, false
		}
		if p.curr.Kind == token.RBRACE {
			p.advance()
			return &ast.Map{Keys: keys, Vals: vals, P: open.Pos}, true
		}
		k, ok := p.parseExpr()
		if !ok {
			continue
		}
		if p.curr.Kind == token.RBRACE || p.curr.Kind == token.EOF {
			p.addErrorf(open.Pos, "map literal has an odd number of forms")
			return nil, false
		}
		v, ok := p.parseExpr()
		if !ok {
			continue
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
}
