// Package deltastate implements the Δ-Stack monoid: the partial-state value
// produced by scanning one chunk of text, and the associative combine
// operation that stitches two partial states together.
//
// Everything here is pure data and pure functions. There is no I/O and no
// shared mutable state, so Combine can run anywhere — sequentially while
// folding chunks left to right, or pairwise inside a parallel reduction
// tree — and must return the same answer either way.
package deltastate

// Flag marks why a candidate boundary may or may not survive to become an
// accepted sentence boundary.
type Flag uint8

const (
	// Strong marks a candidate emitted by an unambiguous multi-character
	// terminator pattern (e.g. "?!").
	Strong Flag = 1 << iota
	// FromAbbr marks a candidate that sits at the end of a known
	// abbreviation. It is set together with SuppressedTentative; the
	// candidate is re-accepted (SuppressedTentative cleared, FromAbbr kept)
	// only if the following word is a sentence starter.
	FromAbbr
	// FromEllipsis marks a candidate produced by an ellipsis pattern.
	FromEllipsis
	// SuppressedTentative marks a candidate that is not accepted unless a
	// later rule (sentence-starter promotion, ellipsis context) overturns
	// the suppression.
	SuppressedTentative
)

func (f Flag) Has(bit Flag) bool { return f&bit != 0 }

// Candidate is a boundary site discovered during scanning, with offsets
// relative to the start of the chunk (or, after combine, relative to the
// start of the combined span) that produced it.
type Candidate struct {
	ByteOffset     int
	CharOffset     int
	LocalDepthSum  int
	Flags          Flag
}

func (c Candidate) suppressed() bool { return c.Flags.Has(SuppressedTentative) }

// DepthEntry is the (net, min) pair tracked per enclosure type.
// Invariant: Min <= 0 and Min <= Net.
type DepthEntry struct {
	Net int
	Min int
}

// combine implements the Depth combine rule:
//
//	net_S = net_L + net_R
//	min_S = min(min_L, net_L + min_R)
func (l DepthEntry) combine(r DepthEntry) DepthEntry {
	return DepthEntry{
		Net: l.Net + r.Net,
		Min: minInt(l.Min, l.Net+r.Min),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// EdgeState captures the cross-chunk-relevant context at the two ends of a
// partial state's span. The boolean/offset fields are the ones a
// combine rule reasons about directly; the lower-case payload fields carry just enough
// of the boundary text for Combine to evaluate those flags without
// re-scanning the original buffer.
const edgeSnippetBytes = 32

type EdgeState struct {
	HeadAlpha           bool
	HeadSentenceStarter bool
	TailDanglingDot     bool
	TailPendingEllipsis bool

	// TailEllipsis* describe an ellipsis pattern that matched fully before
	// this span ended, but whose accept/suppress decision needs the rune
	// that follows it — undiscovered because the span ran out before any
	// non-space rune appeared. Valid only when TailPendingEllipsis is true.
	TailEllipsisByteOffset int
	TailEllipsisCharOffset int
	TailEllipsisDepth      int

	// headSnippet/tailSnippet are small, rune-boundary-safe windows (at
	// most edgeSnippetBytes) onto the very start/end of the chunk that
	// produced this state. Combine uses them to re-derive the word(s)
	// spanning a chunk join, and tailEllipsisWindow to re-derive the
	// context a pending ellipsis needs, without ever touching the full
	// input buffer.
	headSnippet       string
	tailSnippet       string
	tailEllipsisWindow string
}

// NewEdgeState is used by the scanner to build an EdgeState from what it
// observed at the start/end of its chunk.
func NewEdgeState(headAlpha, headStarter bool, headSnippet string,
	tailDanglingDot bool, tailSnippet string, tailPendingEllipsis bool,
	tailEllipsisByteOffset, tailEllipsisCharOffset, tailEllipsisDepth int,
	tailEllipsisWindow string) EdgeState {
	return EdgeState{
		HeadAlpha:              headAlpha,
		HeadSentenceStarter:    headStarter,
		TailDanglingDot:        tailDanglingDot,
		TailPendingEllipsis:    tailPendingEllipsis,
		TailEllipsisByteOffset: tailEllipsisByteOffset,
		TailEllipsisCharOffset: tailEllipsisCharOffset,
		TailEllipsisDepth:      tailEllipsisDepth,
		headSnippet:            headSnippet,
		tailSnippet:            tailSnippet,
		tailEllipsisWindow:     tailEllipsisWindow,
	}
}

// PartialState is the monoid element: candidates discovered so far, the
// per-enclosure-type depth vector, and the edge state needed to resolve
// patterns that straddle a chunk boundary.
type PartialState struct {
	Candidates []Candidate
	Depth      []DepthEntry // indexed by enclosure type id
	Edge       EdgeState
	ByteLen    int
	CharLen    int
}

// Identity returns the zero element of the monoid for a rule table with the
// given number of enclosure types.
func Identity(enclosureTypes int) PartialState {
	return PartialState{Depth: make([]DepthEntry, enclosureTypes)}
}

func (s PartialState) isIdentity() bool {
	return s.ByteLen == 0 && s.CharLen == 0 && len(s.Candidates) == 0
}

// DepthSum returns the total enclosure depth (sum across types) at the end
// of this partial state.
func (s PartialState) DepthSum() int {
	total := 0
	for _, d := range s.Depth {
		total += d.Net
	}
	return total
}
