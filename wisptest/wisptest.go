// Package wisptest provides table-driven test helpers for exercising a
// sequence of expressions against one interpreter instance and asserting
// on each expression's rendered result in turn, mirroring
// elpstest/lisptest.go's TestSequence/TestSuite/RunTestSuite shape.
package wisptest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wisplang/wisp/interp"
	"github.com/wisplang/wisp/lang"
	"github.com/wisplang/wisp/parser"
)

// Case is one expression and the rendered value it must evaluate to.
// Result is compared against the expression's Value.String() form (the
// quoted/structural rendering, not Display's top-level form), so string
// results in a Case must be written with surrounding quotes.
type Case struct {
	Expr   string
	Result string
}

// Sequence is a series of Cases evaluated in order against one shared
// environment, so later Cases may depend on def/defn bindings made by
// earlier ones.
type Sequence []Case

// Suite is a set of named Sequences, each run against its own fresh
// environment.
type Suite []struct {
	Name string
	Sequence
}

// Run evaluates every Sequence in suite on an isolated interp.Interp,
// reporting a failure for each Case whose parse, eval, or rendered result
// doesn't match expectations and continuing on to the next Case, so a
// single mismatch doesn't hide later ones.
func Run(t *testing.T, suite Suite) {
	t.Helper()
	for _, group := range suite {
		group := group
		t.Run(group.Name, func(t *testing.T) {
			it, err := interp.New()
			if !assert.NoError(t, err) {
				return
			}
			for i, c := range group.Sequence {
				exprs, errs := parser.Parse(c.Expr)
				if !assert.Emptyf(t, errs, "case %d %q: parse error", i, c.Expr) {
					continue
				}
				if !assert.Lenf(t, exprs, 1, "case %d %q: expected exactly one expression", i, c.Expr) {
					continue
				}
				v, err := lang.Eval(exprs[0], it.Env())
				if !assert.NoErrorf(t, err, "case %d %q", i, c.Expr) {
					continue
				}
				assert.Equalf(t, c.Result, v.String(), "case %d %q", i, c.Expr)
			}
		})
	}
}
