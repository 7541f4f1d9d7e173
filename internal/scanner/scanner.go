// Package scanner implements the single-pass streaming walker:
// given one chunk of text and a rule table, it produces the
// deltastate.PartialState that the reducer will later combine with its
// neighbours.
package scanner

import (
	"unicode/utf8"

	"github.com/deltastack/sentences/internal/deltastate"
	"github.com/deltastack/sentences/internal/ruletables"
)

// Scan walks text once, left to right, classifying each rune against table
// and accumulating a PartialState. text is treated as chunk-local: all
// offsets in the returned state are relative to the start of text.
func Scan(table *ruletables.Table, text string) deltastate.PartialState {
	s := &walker{
		table: table,
		text:  text,
		depth: make([]deltastate.DepthEntry, table.NumEnclosureTypes()),
	}
	s.candidates = make([]deltastate.Candidate, 0, len(text)/80+4)
	s.run()
	return s.result()
}

type walker struct {
	table *ruletables.Table
	text  string

	i                int // byte cursor
	charIdx          int
	atLineStart      bool
	patternConsumed  int // bytes consumed by the last matched multi-byte pattern

	depth      []deltastate.DepthEntry
	candidates []deltastate.Candidate

	headSet             bool
	headAlpha           bool
	headSentenceStarter bool

	tailDanglingDot     bool
	tailPendingEllipsis bool

	ellipsisPending    bool
	ellipsisEndByte    int
	ellipsisEndChar    int
	ellipsisStartByte  int
	ellipsisDepthAtEnd int
	tailEllipsisWindow string

	abbrPendingIdx int  // index into candidates of an unresolved FROM_ABBR site, -1 if none
	abbrSawSpace   bool // whether a space rune has been seen since abbrPendingIdx was set
}

// ellipsisWindow returns the bounded context text ending at the matched
// ellipsis pattern, used by EllipsisContextAccept's exception lookups.
func (s *walker) ellipsisWindow() string {
	lo := s.ellipsisStartByte - 16
	if lo < 0 {
		lo = 0
	}
	return s.text[lo:s.ellipsisEndByte]
}

func (s *walker) run() {
	s.atLineStart = true
	s.abbrPendingIdx = -1

	for s.i < len(s.text) {
		r, w := utf8.DecodeRuneInString(s.text[s.i:])
		if w == 0 {
			break
		}
		s.observeHead(r)

		isSpace := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		if s.ellipsisPending && !isSpace {
			s.resolveEllipsis(r)
		}
		if s.abbrPendingIdx >= 0 {
			if isSpace {
				s.abbrSawSpace = true
			} else {
				s.resolveAbbrStarter()
			}
		}

		consumed := w

		switch {
		case s.table.SuppressAt(s.text, s.i, s.atLineStart):
			// skip boundary consideration entirely for this character

		case s.tryEnclosure(r):
			// depth vector already updated

		case s.tryEllipsis():
			consumed = s.patternConsumed

		case s.tryMultiCharTerminator():
			consumed = s.patternConsumed

		case s.table.IsTerminator(r):
			s.emitSingleCharTerminator(r, w)

		default:
			// ordinary character, nothing to record
		}

		if r == '\n' {
			s.atLineStart = true
		} else if r != ' ' && r != '\t' && r != '\r' {
			s.atLineStart = false
		}
		s.charIdx += utf8.RuneCountInString(s.text[s.i : s.i+consumed])
		s.i += consumed
	}

	if s.ellipsisPending {
		s.tailPendingEllipsis = true
		s.tailEllipsisWindow = s.ellipsisWindow()
	}
	s.finaliseEdge()
}

// resolveEllipsis decides a pattern matched earlier in the same chunk now
// that nextRune, the first non-space rune to follow it, is known.
func (s *walker) resolveEllipsis(nextRune rune) {
	s.ellipsisPending = false
	window := s.ellipsisWindow()
	flags := deltastate.FromEllipsis
	if !s.table.EllipsisContextAccept(window, nextRune, true) {
		flags |= deltastate.SuppressedTentative
	}
	s.candidates = append(s.candidates, deltastate.Candidate{
		ByteOffset:    s.ellipsisEndByte,
		CharOffset:    s.ellipsisEndChar,
		LocalDepthSum: s.ellipsisDepthAtEnd,
		Flags:         flags,
	})
}

// resolveAbbrStarter decides a FROM_ABBR|SUPPRESSED_TENTATIVE candidate
// emitted earlier in this same chunk, now that the following word is
// known: it may be re-accepted if that word is itself a sentence starter.
func (s *walker) resolveAbbrStarter() {
	idx := s.abbrPendingIdx
	sawSpace := s.abbrSawSpace
	s.abbrPendingIdx = -1
	if s.table.StarterRequiresFollowingSpace() && !sawSpace {
		return
	}
	word, _ := ruletables.WordAt(s.text, s.i)
	if word == "" || !s.table.IsSentenceStarter(word) {
		return
	}
	s.candidates[idx].Flags &^= deltastate.SuppressedTentative
}

// observeHead records the head_alpha / head_sentence_starter flags the
// first time a non-whitespace rune is seen.
func (s *walker) observeHead(r rune) {
	if s.headSet {
		return
	}
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return
	}
	s.headSet = true
	s.headAlpha = ruletables.IsWordRune(r)
	if s.headAlpha {
		word, _ := ruletables.WordAt(s.text, s.i)
		s.headSentenceStarter = s.table.IsSentenceStarter(word)
	}
}

func (s *walker) depthSum() int {
	total := 0
	for _, d := range s.depth {
		total += d.Net
	}
	return total
}

func (s *walker) tryEnclosure(r rune) bool {
	rule, ok := s.table.Enclosure(r)
	if !ok {
		return false
	}
	t := rule.TypeID
	delta := rule.Delta
	if rule.Symmetric {
		switch s.depth[t].Net {
		case 0:
			delta = 1
		case 1:
			delta = -1
		default:
			delta = 0 // depth >= 2: unsupported nesting, ignore per spec non-goal
		}
	}
	if delta == 0 {
		return true
	}
	d := s.depth[t]
	d.Net += delta
	if d.Net < d.Min {
		d.Min = d.Net
	}
	s.depth[t] = d
	return true
}

func (s *walker) tryEllipsis() bool {
	n, ok := s.table.EllipsisMatch(s.text, s.i)
	if !ok {
		return false
	}
	s.patternConsumed = n
	s.ellipsisPending = true
	s.ellipsisStartByte = s.i
	s.ellipsisEndByte = s.i + n
	s.ellipsisEndChar = s.charIdx + utf8.RuneCountInString(s.text[s.i:s.i+n])
	s.ellipsisDepthAtEnd = s.depthSum()
	return true
}

func (s *walker) tryMultiCharTerminator() bool {
	n, strength, ok := s.table.TerminatorPatternAt(s.text, s.i)
	if !ok {
		return false
	}
	_ = strength
	s.patternConsumed = n
	s.emit(s.i+n, deltastate.Strong)
	return true
}

func (s *walker) emitSingleCharTerminator(r rune, w int) {
	if r == '.' {
		if s.precededByDigit() && s.followedByDigit(w) {
			return // decimal point, not a terminator
		}
		word, start := ruletables.WordBefore(s.text, s.i)
		isAbbr := word != "" && s.table.AbbreviationLookup(word+".")
		if !isAbbr && word != "" && start > 0 && s.text[start-1] == '.' {
			// Multi-dot abbreviation such as "U.S.": checked the same way
			// Combine checks one split across a chunk join, and the candidate
			// the earlier dot already emitted is suppressed along with it.
			prev, _ := ruletables.WordBefore(s.text, start-1)
			full := prev + "." + word + "."
			if prev != "" && (s.table.AbbreviationLookup(full) || s.table.MultiDotAbbreviation(full)) {
				isAbbr = true
				if n := len(s.candidates); n > 0 && s.candidates[n-1].ByteOffset == start {
					s.candidates[n-1].Flags |= deltastate.FromAbbr | deltastate.SuppressedTentative
				}
			}
		}
		if isAbbr {
			s.emit(s.i+w, deltastate.FromAbbr|deltastate.SuppressedTentative)
			s.abbrPendingIdx = len(s.candidates) - 1
			s.abbrSawSpace = false
			return
		}
	}
	s.emit(s.i+w, 0)
}

func (s *walker) precededByDigit() bool {
	r, ok := prevRune(s.text, s.i)
	return ok && r >= '0' && r <= '9'
}

func (s *walker) followedByDigit(w int) bool {
	r, size := utf8.DecodeRuneInString(s.text[s.i+w:])
	return size > 0 && r >= '0' && r <= '9'
}

func prevRune(text string, i int) (rune, bool) {
	if i <= 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return r, true
}

func (s *walker) emit(byteOffset int, flags deltastate.Flag) {
	charOffset := s.charIdx + utf8.RuneCountInString(s.text[s.i:byteOffset])
	s.candidates = append(s.candidates, deltastate.Candidate{
		ByteOffset:    byteOffset,
		CharOffset:    charOffset,
		LocalDepthSum: s.depthSum(),
		Flags:         flags,
	})
}

// finaliseEdge inspects the tail of the chunk for a dangling abbreviation
// dot (a word rune followed by a final '.'), using the "edge state at chunk
// end" rule. An ellipsis that never resolved locally is recorded by run.
func (s *walker) finaliseEdge() {
	if len(s.text) == 0 || s.text[len(s.text)-1] != '.' {
		return
	}
	if r, ok := prevRune(s.text, len(s.text)-1); ok && ruletables.IsWordRune(r) {
		s.tailDanglingDot = true
	}
}

func (s *walker) result() deltastate.PartialState {
	headSnippet := snippetHead(s.text)
	tailSnippet := snippetTail(s.text)

	edge := deltastate.NewEdgeState(
		s.headAlpha, s.headSentenceStarter, headSnippet,
		s.tailDanglingDot, tailSnippet, s.tailPendingEllipsis,
		s.ellipsisEndByte, s.ellipsisEndChar, s.ellipsisDepthAtEnd,
		s.tailEllipsisWindow,
	)

	return deltastate.PartialState{
		Candidates: s.candidates,
		Depth:      s.depth,
		Edge:       edge,
		ByteLen:    len(s.text),
		CharLen:    s.charIdx,
	}
}

const edgeSnippetBytes = 32

func snippetHead(text string) string {
	n := edgeSnippetBytes
	if n > len(text) {
		n = len(text)
	}
	for n < len(text) && !utf8.RuneStart(text[n]) {
		n++
	}
	return text[:n]
}

func snippetTail(text string) string {
	n := len(text) - edgeSnippetBytes
	if n < 0 {
		n = 0
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[n:]
}
