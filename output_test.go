package sentences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deltastack/sentences/internal/deltastate"
)

func TestFlagsFromInternal(t *testing.T) {
	got := flagsFromInternal(deltastate.Strong | deltastate.FromAbbr)
	assert.True(t, got&FlagStrong != 0)
	assert.True(t, got&FlagFromAbbreviation != 0)
	assert.False(t, got&FlagFromEllipsis != 0)
}

func TestOutputSentencesNoBoundaries(t *testing.T) {
	out := Output{}
	assert.Equal(t, []string{"hello"}, out.Sentences("hello"))
}

func TestOutputSentencesTrailingRemainder(t *testing.T) {
	out := Output{Boundaries: []Boundary{{ByteOffset: 4}}}
	assert.Equal(t, []string{"One.", " Two"}, out.Sentences("One. Two"))
}

func TestOutputSentencesExactBoundaryAtEnd(t *testing.T) {
	out := Output{Boundaries: []Boundary{{ByteOffset: 4}}}
	assert.Equal(t, []string{"One."}, out.Sentences("One."))
}
