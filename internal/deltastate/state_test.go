package deltastate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepthEntryCombine(t *testing.T) {
	cases := []struct {
		name     string
		l, r     DepthEntry
		expected DepthEntry
	}{
		{"both zero", DepthEntry{}, DepthEntry{}, DepthEntry{}},
		{"opens then closes", DepthEntry{Net: 1, Min: 0}, DepthEntry{Net: -1, Min: -1}, DepthEntry{Net: 0, Min: 0}},
		{"closes then opens", DepthEntry{Net: -1, Min: -1}, DepthEntry{Net: 1, Min: 0}, DepthEntry{Net: 0, Min: -1}},
		{"both negative", DepthEntry{Net: -2, Min: -2}, DepthEntry{Net: -1, Min: -1}, DepthEntry{Net: -3, Min: -3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.l.combine(c.r))
		})
	}
}

func TestDepthEntryCombineAssociative(t *testing.T) {
	a := DepthEntry{Net: 1, Min: 0}
	b := DepthEntry{Net: -2, Min: -2}
	c := DepthEntry{Net: 1, Min: -1}

	left := a.combine(b).combine(c)
	right := a.combine(b.combine(c))
	assert.Equal(t, left, right)
}

func TestIdentityIsIdentity(t *testing.T) {
	id := Identity(3)
	assert.True(t, id.isIdentity())
	assert.Len(t, id.Depth, 3)
}

func TestPartialStateDepthSum(t *testing.T) {
	s := PartialState{Depth: []DepthEntry{{Net: 1}, {Net: -1}, {Net: 2}}}
	assert.Equal(t, 2, s.DepthSum())
}

func TestFlagHas(t *testing.T) {
	f := Strong | FromAbbr
	assert.True(t, f.Has(Strong))
	assert.True(t, f.Has(FromAbbr))
	assert.False(t, f.Has(FromEllipsis))
	assert.False(t, f.Has(SuppressedTentative))
}
