package sentences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deltastack/sentences/internal/chunk"
	"github.com/deltastack/sentences/internal/reduce"
	"github.com/deltastack/sentences/internal/ruletables"
)

func TestWrapInternalErrorNil(t *testing.T) {
	assert.NoError(t, wrapInternalError(nil))
}

func TestWrapInternalErrorInvalidUtf8(t *testing.T) {
	err := wrapInternalError(&chunk.InvalidUtf8{BytePosition: 5})
	var target *InvalidUtf8
	require := assert.New(t)
	require.ErrorAs(err, &target)
	require.Equal(5, target.BytePosition)
}

func TestWrapInternalErrorConfigInvalid(t *testing.T) {
	err := wrapInternalError(&ruletables.ErrConfigInvalid{Reason: "bad"})
	var target *ConfigInvalid
	require := assert.New(t)
	require.ErrorAs(err, &target)
	require.Equal("bad", target.Reason)
}

func TestWrapInternalErrorCancelled(t *testing.T) {
	err := wrapInternalError(reduce.ErrCancelled)
	assert.Same(t, Cancelled, err)
}

func TestWrapInternalErrorPassthrough(t *testing.T) {
	orig := assert.AnError
	assert.Equal(t, orig, wrapInternalError(orig))
}
