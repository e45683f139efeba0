package builtin

import (
	"fmt"

	"github.com/wisplang/wisp/lang"
	"github.com/wisplang/wisp/parser"
)

// prelude defines cond/and/or as built-in macros (SPEC_FULL.md §4's
// supplemented features), installed into the macro table the exact same
// way a user's own defmacro form would be: they expand to nested if/let
// forms built from car/cdr/length, not new evaluator syntax. Grounded on
// the classic Lisp technique of writing clause-chain and short-circuit
// forms as self-recursive macros over their own rest-argument list.
const prelude = `
(defmacro cond [& clauses]
  (if (= (length clauses) 0)
    nil
    (if (= (car clauses) :else)
      (car (cdr clauses))
      (if (= (length clauses) 1)
        (car clauses)
        ` + "`" + `(if ~(car clauses)
             ~(car (cdr clauses))
             (cond ~@(cdr (cdr clauses))))))))

(defmacro and [& clauses]
  (if (= (length clauses) 0)
    true
    (if (= (length clauses) 1)
      (car clauses)
      ` + "`" + `(let [t# ~(car clauses)]
           (if t# (and ~@(cdr clauses)) t#)))))

(defmacro or [& clauses]
  (if (= (length clauses) 0)
    nil
    (if (= (length clauses) 1)
      (car clauses)
      ` + "`" + `(let [t# ~(car clauses)]
           (if t# t# (or ~@(cdr clauses)))))))
`

// installPrelude evaluates the built-in macro definitions into env's
// macro table. It runs last in Install, after every primitive the macro
// bodies call (car, cdr, length, =) already exists.
func installPrelude(env *lang.Env) {
	exprs, errs := parser.Parse(prelude)
	if len(errs) > 0 {
		panic(fmt.Sprintf("builtin: prelude failed to parse: %v", errs[0]))
	}
	for _, expr := range exprs {
		if _, err := lang.Eval(expr, env); err != nil {
			panic(fmt.Sprintf("builtin: prelude failed to evaluate: %v", err))
		}
	}
}
