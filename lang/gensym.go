package lang

import "fmt"

// gensym returns a fresh identifier derived from base, unique across the
// lifetime of env's interpreter. The counter lives on env's root (see
// Env.gensymCounter) rather than as a package-level var, so two Interp
// instances never share a counter or influence each other's generated
// names (spec.md §5's "two concurrent interpreter instances share no
// state"). spec.md §9 asks only for an interpreter-global counter, not a
// process-global one.
func (env *Env) gensym(base string) string {
	root := env.Root()
	root.gensymCounter++
	return fmt.Sprintf("%s__gen%d", base, root.gensymCounter)
}
