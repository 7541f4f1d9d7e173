package sentences

import (
	"time"

	"github.com/deltastack/sentences/internal/deltastate"
)

// BoundaryFlag mirrors deltastate.Flag at the public API boundary.
type BoundaryFlag uint8

const (
	FlagStrong BoundaryFlag = 1 << iota
	FlagFromAbbreviation
	FlagFromEllipsis
)

func flagsFromInternal(f deltastate.Flag) BoundaryFlag {
	var out BoundaryFlag
	if f.Has(deltastate.Strong) {
		out |= FlagStrong
	}
	if f.Has(deltastate.FromAbbr) {
		out |= FlagFromAbbreviation
	}
	if f.Has(deltastate.FromEllipsis) {
		out |= FlagFromEllipsis
	}
	return out
}

// Boundary is one accepted sentence boundary in the processed input.
type Boundary struct {
	ByteOffset int
	CharOffset int
	Flags      BoundaryFlag
}

// Metadata describes how an Output was produced.
type Metadata struct {
	ModeUsed        string
	ThreadsUsed     int
	ChunkSizeUsed   int
	TotalBytes      int
	Duration        time.Duration
	Language        string
	RuleFingerprint string
	TraceID         string
}

// Output is the result of a successful Process call: the ordered boundary
// list plus the metadata describing how it was computed.
type Output struct {
	Boundaries []Boundary
	Metadata   Metadata
}

// Sentences splits text using the boundaries in o and returns the
// substrings between them, trimming nothing — callers that want trimmed
// sentences slice text themselves using the byte offsets, which is why
// this is a convenience method rather than the primary output shape.
func (o Output) Sentences(text string) []string {
	if len(o.Boundaries) == 0 {
		return []string{text}
	}
	out := make([]string, 0, len(o.Boundaries)+1)
	lo := 0
	for _, b := range o.Boundaries {
		out = append(out, text[lo:b.ByteOffset])
		lo = b.ByteOffset
	}
	if lo < len(text) {
		out = append(out, text[lo:])
	}
	return out
}
