package lang

// Equal implements spec.md §4.6's `=`: structural equality over scalars
// and recursive structural equality over collections. Map equality is
// order-insensitive (spec.md §9's Open Question resolution).
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Number:
		return float64(x) == float64(b.(Number))
	case String:
		return x == b.(String)
	case Bool:
		return x == b.(Bool)
	case NilValue:
		return true
	case Keyword:
		return x == b.(Keyword)
	case List:
		y := b.(List)
		return equalSeq(x.Items, y.Items)
	case Vector:
		y := b.(Vector)
		return equalSeq(x.Items, y.Items)
	case Map:
		y := b.(Map)
		if x.Len() != y.Len() {
			return false
		}
		for _, k := range x.Keys() {
			xv, _ := x.Get(k)
			yv, ok := y.Get(k)
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case Closure:
		return false
	case Primitive:
		y := b.(Primitive)
		return x.Name == y.Name
	default:
		return false
	}
}

func equalSeq(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
