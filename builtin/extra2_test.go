package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisplang/wisp/lang"
)

func TestRegexpMatchAndReplace(t *testing.T) {
	v, _ := run(t, `(regexp-match? "^ab+c$" "abbbc")`)
	assert.Equal(t, lang.Bool(true), v)

	v, _ = run(t, `(regexp-match? "^ab+c$" "xyz")`)
	assert.Equal(t, lang.Bool(false), v)

	v, _ = run(t, `(regexp-replace "[aeiou]" "hello world" "_")`)
	assert.Equal(t, lang.String("h_ll_ w_rld"), v)
}

func TestTimeNowReturnsANumber(t *testing.T) {
	v, _ := run(t, `(time-now)`)
	_, ok := v.(lang.Number)
	assert.True(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	v, _ := run(t, `(json-decode (json-encode {:a 1 :b [1 2 3]}))`)
	m, ok := v.(lang.Map)
	require.True(t, ok)
	a, ok := m.Get(lang.String("a"))
	require.True(t, ok)
	assert.Equal(t, lang.Number(1), a)
	b, ok := m.Get(lang.String("b"))
	require.True(t, ok)
	assert.Equal(t, lang.Vector{Items: []lang.Value{lang.Number(1), lang.Number(2), lang.Number(3)}}, b)
}

func TestJSONDecodeOfScalars(t *testing.T) {
	v, _ := run(t, `(json-decode "42")`)
	assert.Equal(t, lang.Number(42), v)

	v, _ = run(t, `(json-decode "\"hi\"")`)
	assert.Equal(t, lang.String("hi"), v)

	v, _ = run(t, `(json-decode "null")`)
	assert.Equal(t, lang.Nil, v)
}
