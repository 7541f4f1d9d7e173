package deltastate

import "github.com/deltastack/sentences/internal/ruletables"

// VerifyAssociative recomputes Combine(Combine(a, b), c) against
// Combine(a, Combine(b, c)) and reports whether the two reduction orderings
// agree on the resulting candidates and depth vector. reduce calls this,
// under the sentencesdebug build tag, on every third triple of the mapped
// chunk states before tree-combine starts — the whole point of the monoid being
// associative is that both groupings must always agree.
func VerifyAssociative(table *ruletables.Table, a, b, c PartialState) bool {
	left := Combine(table, Combine(table, a, b), c)
	right := Combine(table, a, Combine(table, b, c))
	return candidatesEqual(left.Candidates, right.Candidates) && depthEqual(left.Depth, right.Depth)
}

func candidatesEqual(x, y []Candidate) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func depthEqual(x, y []DepthEntry) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// candidatesMonotonic reports whether candidate byte offsets are
// non-decreasing, the shape every combine rule is expected to preserve.
func candidatesMonotonic(cs []Candidate) bool {
	for i := 1; i < len(cs); i++ {
		if cs[i].ByteOffset < cs[i-1].ByteOffset {
			return false
		}
	}
	return true
}
