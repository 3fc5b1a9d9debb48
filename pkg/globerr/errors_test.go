package globerr

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	e := New(RegexTooComplex, "pattern too long")
	assert.Equal(t, "pattern too long", e.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fs.ErrPermission
	e := Wrap(Io, cause)
	require.Error(t, e)
	assert.True(t, errors.Is(e, fs.ErrPermission))
	assert.Equal(t, Io, KindOf(e))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(Io, nil))
}

func TestIsMatchesByKind(t *testing.T) {
	a := New(Timeout, "a")
	b := New(Timeout, "different message")
	c := New(SymlinkCycle, "c")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestKindOfUnwrapsChain(t *testing.T) {
	inner := New(PathTraversal, "escape")
	outer := Wrapf(Other, inner, "compiling pattern %q", "../x")
	assert.Equal(t, Other, KindOf(outer))
	assert.True(t, errors.Is(outer, inner))
}

func TestKindOfNonGlobError(t *testing.T) {
	assert.Equal(t, Other, KindOf(errors.New("plain")))
}
