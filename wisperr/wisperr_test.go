package wisperr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisplang/wisp/token"
	"github.com/wisplang/wisp/wisperr"
)

func TestErrorFormattingIncludesPositionWhenPresent(t *testing.T) {
	err := wisperr.TypeError(&token.Pos{Line: 3, Col: 5}, "expected a %s, got %s", "number", "string")
	assert.Equal(t, "3:5: expected a number, got string", err.Error())

	kind, ok := wisperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, wisperr.Type, kind)

	pos, ok := wisperr.PosOf(err)
	require.True(t, ok)
	assert.Equal(t, token.Pos{Line: 3, Col: 5}, pos)
}

func TestErrorFormattingOmitsPositionWhenAbsent(t *testing.T) {
	err := wisperr.UnboundSymbolError(nil, "foo")
	assert.Equal(t, "undefined symbol: foo", err.Error())

	_, ok := wisperr.PosOf(err)
	assert.False(t, ok)
}

func TestKindOfRejectsForeignErrors(t *testing.T) {
	_, ok := wisperr.KindOf(assertionError{})
	assert.False(t, ok)
}

type assertionError struct{}

func (assertionError) Error() string { return "not a wisperr" }

func TestArityErrorMessage(t *testing.T) {
	err := wisperr.ArityError(nil, "f", 2, 1)
	assert.Contains(t, err.Error(), "wrong number of arguments to f")
	kind, ok := wisperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, wisperr.Arity, kind)
}
