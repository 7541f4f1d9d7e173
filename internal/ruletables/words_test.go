package ruletables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordBefore(t *testing.T) {
	word, start := WordBefore("Dr. Smith arrived", 2)
	assert.Equal(t, "Dr", word)
	assert.Equal(t, 0, start)
}

func TestWordBeforeNoWordRunes(t *testing.T) {
	word, start := WordBefore(`work".`, 5)
	assert.Equal(t, "", word)
	assert.Equal(t, 5, start)
}

func TestWordBeforeAtStartOfString(t *testing.T) {
	word, start := WordBefore("Hi", 2)
	assert.Equal(t, "Hi", word)
	assert.Equal(t, 0, start)
}

func TestWordAt(t *testing.T) {
	word, end := WordAt("Smith arrived", 0)
	assert.Equal(t, "Smith", word)
	assert.Equal(t, 5, end)
}

func TestWordAtNonWordStart(t *testing.T) {
	word, end := WordAt(". Next", 0)
	assert.Equal(t, "", word)
	assert.Equal(t, 0, end)
}

func TestSkipSpaces(t *testing.T) {
	assert.Equal(t, 3, SkipSpaces("   abc", 0))
	assert.Equal(t, 0, SkipSpaces("abc", 0))
	assert.Equal(t, len("abc  "), SkipSpaces("abc  ", 3))
}

func TestSkipSpacesFullWidth(t *testing.T) {
	text := "　abc"
	assert.Equal(t, len("　"), SkipSpaces(text, 0))
}
