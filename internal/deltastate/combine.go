package deltastate

import (
	"unicode/utf8"

	"github.com/deltastack/sentences/internal/ruletables"
)

// Combine implements the monoid's associative binary operation: it
// concatenates two partial states (L followed by R),
// merges their depth vectors, and resolves the handful of rules that can
// only be decided once both sides of a chunk join are known (a dangling
// abbreviation dot, a sentence-starter promotion, a split ellipsis).
//
// Combine never inspects the original input buffer: everything it needs
// about each side's edge was captured by the scanner into EdgeState, as a
// small bounded snippet of text around the join. This is what lets it run
// identically whether L and R are two adjacent chunks or two already
// combined spans deep inside a reduction tree.
func Combine(table *ruletables.Table, l, r PartialState) PartialState {
	if l.isIdentity() {
		return r
	}
	if r.isIdentity() {
		return l
	}

	depth := combineDepth(l.Depth, r.Depth)
	shift := 0
	for _, d := range l.Depth {
		shift += d.Net
	}

	splitIdx := len(l.Candidates)
	candidates := make([]Candidate, 0, len(l.Candidates)+len(r.Candidates))
	candidates = append(candidates, l.Candidates...)
	for _, c := range r.Candidates {
		candidates = append(candidates, Candidate{
			ByteOffset:    c.ByteOffset + l.ByteLen,
			CharOffset:    c.CharOffset + l.CharLen,
			LocalDepthSum: c.LocalDepthSum + shift,
			Flags:         c.Flags,
		})
	}

	edge := EdgeState{
		HeadAlpha:           l.Edge.HeadAlpha,
		HeadSentenceStarter: l.Edge.HeadSentenceStarter,
		headSnippet:         l.Edge.headSnippet,
		TailDanglingDot:     r.Edge.TailDanglingDot,
		TailPendingEllipsis: r.Edge.TailPendingEllipsis,
		tailSnippet:         r.Edge.tailSnippet,
	}
	if r.Edge.TailPendingEllipsis {
		// r's own pending ellipsis was never resolved within r itself; carry
		// its offsets forward into s's coordinate system so a later Combine
		// one level up can still resolve it against s's own tailSnippet.
		edge.TailEllipsisByteOffset = r.Edge.TailEllipsisByteOffset + l.ByteLen
		edge.TailEllipsisCharOffset = r.Edge.TailEllipsisCharOffset + l.CharLen
		edge.TailEllipsisDepth = r.Edge.TailEllipsisDepth + shift
		edge.tailEllipsisWindow = r.Edge.tailEllipsisWindow
	}

	s := PartialState{
		Candidates: candidates,
		Depth:      depth,
		Edge:       edge,
		ByteLen:    l.ByteLen + r.ByteLen,
		CharLen:    l.CharLen + r.CharLen,
	}

	resolveAbbreviationStarter(table, &s, l, r, splitIdx)
	resolveDanglingSplitWord(table, &s, l, r, splitIdx)
	resolvePendingEllipsis(table, &s, l, r, splitIdx)

	assertInvariant(candidatesMonotonic(s.Candidates), "candidate offsets not monotonic after combine: %+v", s.Candidates)
	return s
}

func combineDepth(l, r []DepthEntry) []DepthEntry {
	n := len(l)
	if len(r) > n {
		n = len(r)
	}
	out := make([]DepthEntry, n)
	for i := 0; i < n; i++ {
		var le, re DepthEntry
		if i < len(l) {
			le = l[i]
		}
		if i < len(r) {
			re = r[i]
		}
		out[i] = le.combine(re)
	}
	return out
}

// resolveAbbreviationStarter applies the common case of the
// sentence-starter rule: L's last candidate was tentatively suppressed
// because it sits at the end of a recognised abbreviation, and R's first
// word (after any leading whitespace) is a sentence starter. This does not
// require the abbreviation's word to have been literally split across the
// chunk boundary — only that the candidate is still pending resolution.
func resolveAbbreviationStarter(table *ruletables.Table, s *PartialState, l, r PartialState, splitIdx int) {
	if splitIdx == 0 || splitIdx > len(s.Candidates) {
		return
	}
	last := &s.Candidates[splitIdx-1]
	if !last.Flags.Has(FromAbbr) || !last.Flags.Has(SuppressedTentative) {
		return
	}
	if !r.Edge.HeadSentenceStarter {
		return
	}
	if table.StarterRequiresFollowingSpace() && !hasInterveningSpace(l.Edge.tailSnippet, r.Edge.headSnippet) {
		return
	}
	last.Flags &^= SuppressedTentative
}

// hasInterveningSpace reports whether a space rune occurs at the very join
// of tail and head, e.g. between "Dr." and " Smith" but not between "Dr."
// and "Smith" (glued, no space at all).
func hasInterveningSpace(tail, head string) bool {
	if tail != "" {
		r, _ := utf8.DecodeLastRuneInString(tail)
		if isJoinSpace(r) {
			return true
		}
	}
	if head != "" {
		r, _ := utf8.DecodeRuneInString(head)
		if isJoinSpace(r) {
			return true
		}
	}
	return false
}

func isJoinSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '　':
		return true
	}
	return false
}

// resolveDanglingSplitWord handles the rarer case where the abbreviation's
// own word was literally cut by the chunk boundary (e.g. "U." | "S. is").
func resolveDanglingSplitWord(table *ruletables.Table, s *PartialState, l, r PartialState, splitIdx int) {
	if !l.Edge.TailDanglingDot || !r.Edge.HeadAlpha || splitIdx == 0 {
		return
	}
	joinPoint := len(l.Edge.tailSnippet)
	joined := l.Edge.tailSnippet + r.Edge.headSnippet
	if joinPoint == 0 || joinPoint > len(joined) || joined[joinPoint-1] != '.' {
		return
	}
	tailWord, _ := ruletables.WordBefore(joined, joinPoint-1)
	headWord, headEnd := ruletables.WordAt(joined, joinPoint)
	headHasDot := headEnd < len(joined) && joined[headEnd] == '.'

	full := tailWord + "." + headWord
	if headHasDot {
		full += "."
	}
	if !table.AbbreviationLookup(tailWord+".") && !table.MultiDotAbbreviation(full) {
		return
	}

	suppressOrDelete(s, splitIdx-1)
	if headHasDot {
		idx := findRCandidateAt(s, splitIdx, l.ByteLen, len(headWord)+1)
		if idx >= 0 {
			suppressOrDelete(s, idx)
		}
	}
}

// findRCandidateAt finds the index (in s.Candidates, already shifted by
// l.ByteLen) of the first candidate contributed by r within maxRelOffset
// bytes of r's own start, or -1 if there is none.
func findRCandidateAt(s *PartialState, splitIdx int, lByteLen int, maxRelOffset int) int {
	for i := splitIdx; i < len(s.Candidates); i++ {
		rel := s.Candidates[i].ByteOffset - lByteLen
		if rel < 0 {
			continue
		}
		if rel <= maxRelOffset {
			return i
		}
		break
	}
	return -1
}

func suppressOrDelete(s *PartialState, idx int) {
	if idx < 0 || idx >= len(s.Candidates) {
		return
	}
	c := s.Candidates[idx]
	if c.Flags.Has(SuppressedTentative) {
		s.Candidates = append(s.Candidates[:idx], s.Candidates[idx+1:]...)
		return
	}
	c.Flags |= SuppressedTentative | FromAbbr
	s.Candidates[idx] = c
}

// resolvePendingEllipsis resolves an ellipsis pattern that matched fully
// inside l but ran out of chunk before the following rune was known, per
// the ellipsis cross-chunk rule: once r's head is available, the
// same accept/suppress decision the scanner would have made in a single
// pass can finally be made.
func resolvePendingEllipsis(table *ruletables.Table, s *PartialState, l, r PartialState, splitIdx int) {
	if !l.Edge.TailPendingEllipsis {
		return
	}

	nextRune, hasNext := firstNonSpaceRune(r.Edge.headSnippet)
	accept := table.EllipsisContextAccept(l.Edge.tailEllipsisWindow, nextRune, hasNext)

	cand := Candidate{
		ByteOffset:    l.Edge.TailEllipsisByteOffset,
		CharOffset:    l.Edge.TailEllipsisCharOffset,
		LocalDepthSum: l.Edge.TailEllipsisDepth,
		Flags:         FromEllipsis,
	}
	if !accept {
		cand.Flags |= SuppressedTentative
	}
	s.Candidates = insertCandidateAt(s.Candidates, splitIdx, cand)
}

// FinalizeTrailingEllipsis resolves a pending ellipsis that reached the true
// end of the input with no further text to reveal the following rune, per
// the end-of-input case: there is no R to combine against, so the
// scanner's tail state must be settled here instead, using
// EllipsisContextAccept's own no-next-rune fallback. Call this once, on the
// final combined state of a whole Process() call, before finalise — never on
// an intermediate chunk or tree-combine result, which may yet gain a right
// neighbour.
func FinalizeTrailingEllipsis(table *ruletables.Table, s PartialState) PartialState {
	if !s.Edge.TailPendingEllipsis {
		return s
	}
	accept := table.EllipsisContextAccept(s.Edge.tailEllipsisWindow, 0, false)
	cand := Candidate{
		ByteOffset:    s.Edge.TailEllipsisByteOffset,
		CharOffset:    s.Edge.TailEllipsisCharOffset,
		LocalDepthSum: s.Edge.TailEllipsisDepth,
		Flags:         FromEllipsis,
	}
	if !accept {
		cand.Flags |= SuppressedTentative
	}
	s.Candidates = append(s.Candidates, cand)
	s.Edge.TailPendingEllipsis = false
	return s
}

func firstNonSpaceRune(s string) (rune, bool) {
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '　' {
			continue
		}
		return r, true
	}
	return 0, false
}

func insertCandidateAt(list []Candidate, idx int, c Candidate) []Candidate {
	list = append(list, Candidate{})
	copy(list[idx+1:], list[idx:])
	list[idx] = c
	return list
}
