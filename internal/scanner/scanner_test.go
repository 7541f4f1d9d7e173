package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltastack/sentences/internal/deltastate"
	"github.com/deltastack/sentences/internal/ruletables"
)

func english(t *testing.T) *ruletables.Table {
	t.Helper()
	table, err := ruletables.Builtin("en")
	require.NoError(t, err)
	return table
}

func japanese(t *testing.T) *ruletables.Table {
	t.Helper()
	table, err := ruletables.Builtin("ja")
	require.NoError(t, err)
	return table
}

// accepted returns the byte offsets of candidates that would survive
// finalisation for a single, whole-input chunk: local_depth_sum zero and
// not tentatively suppressed.
func accepted(s deltastate.PartialState) []int {
	var out []int
	for _, c := range s.Candidates {
		if c.LocalDepthSum == 0 && !c.Flags.Has(deltastate.SuppressedTentative) {
			out = append(out, c.ByteOffset)
		}
	}
	return out
}

func TestScanS1DecimalSuppression(t *testing.T) {
	table := english(t)
	text := "The price is $3.50 today."
	s := Scan(table, text)
	assert.Equal(t, []int{len(text)}, accepted(s))
}

func TestScanS2AbbreviationThenStarter(t *testing.T) {
	table := english(t)
	text := "Dr. Smith arrived. Then he left."
	s := Scan(table, text)

	wantArrived := len("Dr. Smith arrived.")
	wantLeft := len(text)
	assert.Equal(t, []int{wantArrived, wantLeft}, accepted(s))
}

func TestScanS4NestedEnclosures(t *testing.T) {
	table := english(t)
	text := `He said "(so-called 'smart') work". Then we agreed.`
	s := Scan(table, text)

	wantWork := len(`He said "(so-called 'smart') work".`)
	wantAgreed := len(text)
	assert.Equal(t, []int{wantWork, wantAgreed}, accepted(s))
}

func TestScanS5EllipsisContext(t *testing.T) {
	table := english(t)
	text := "He paused... Then continued. She said... well, no."
	s := Scan(table, text)

	wantPaused := len("He paused...")
	wantContinued := len("He paused... Then continued.")
	wantNo := len(text)
	assert.Equal(t, []int{wantPaused, wantContinued, wantNo}, accepted(s))
}

func TestScanS6JapaneseFullWidth(t *testing.T) {
	table := japanese(t)
	text := "これは日本語です。「こんにちは。」と言った。"
	s := Scan(table, text)

	wantDesu := len("これは日本語です。")
	wantItta := len(text)
	assert.Equal(t, []int{wantDesu, wantItta}, accepted(s))
}

func TestScanAbbreviationWithoutStarterStaysSuppressed(t *testing.T) {
	table := english(t)
	text := "Dr. Smith arrived."
	s := Scan(table, text)
	assert.Equal(t, []int{len(text)}, accepted(s))
}

func TestScanEmptyInput(t *testing.T) {
	table := english(t)
	s := Scan(table, "")
	assert.Empty(t, s.Candidates)
	assert.Equal(t, 0, s.ByteLen)
}

func TestScanTailDanglingDotEdge(t *testing.T) {
	table := english(t)
	s := Scan(table, "The U.")
	assert.True(t, s.Edge.TailDanglingDot)
}

func TestScanHeadSentenceStarterEdge(t *testing.T) {
	table := english(t)
	s := Scan(table, "He left early.")
	assert.True(t, s.Edge.HeadAlpha)
	assert.True(t, s.Edge.HeadSentenceStarter)
}

func TestScanAbbreviationGluedToStarterNotPromotedByDefault(t *testing.T) {
	table := english(t)
	text := "Dr.The eagle flew."
	s := Scan(table, text)
	assert.Equal(t, []int{len(text)}, accepted(s))
}

func customTable(t *testing.T, requireFollowingSpace bool) *ruletables.Table {
	t.Helper()
	cfg := ruletables.Config{
		Metadata:    ruletables.MetadataConfig{Code: "xx", Name: "test"},
		Terminators: ruletables.TerminatorsConfig{Chars: []string{".", "!", "?"}},
		Abbreviations: map[string][]string{
			"titles": {"Dr."},
		},
		SentenceStarters: map[string]any{
			"require_following_space": requireFollowingSpace,
			"determiners":             []any{"The"},
		},
	}
	table, err := ruletables.Build(cfg)
	require.NoError(t, err)
	return table
}

func TestScanAbbreviationGluedToStarterPromotedWhenSpaceNotRequired(t *testing.T) {
	table := customTable(t, false)
	text := "Dr.The eagle flew."
	s := Scan(table, text)

	wantDr := len("Dr.")
	wantFlew := len(text)
	assert.Equal(t, []int{wantDr, wantFlew}, accepted(s))
}
