package ruletables

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
	"golang.org/x/text/width"
)

// ErrConfigInvalid reports a malformed language configuration: a bad
// pattern, conflicting enclosure directions, or invalid UTF-8 in the
// configuration data.
type ErrConfigInvalid struct {
	Code   string
	Reason string
}

func (e *ErrConfigInvalid) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("ruletables: config invalid for language %q: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("ruletables: config invalid: %s", e.Reason)
}

// EnclosureRule describes one enclosure character's behaviour, the value
// returned by Table.Enclosure.
type EnclosureRule struct {
	TypeID    int
	Delta     int // +1 open, -1 close; 0 for symmetric (resolved by caller against current depth)
	Symmetric bool
}

// Table is the immutable, language-parameterised lookup structure compiled
// from a Config. It is built once per language at processor construction
// and shared read-only across scanner goroutines — there is no locking
// because nothing here is ever mutated after Build returns.
type Table struct {
	code string
	name string

	terminatorChars map[rune]struct{}
	terminatorPats  []compiledPattern

	enclosures   map[rune]EnclosureRule
	numEnclosure int

	abbrev *abbreviationTrie

	sentenceStarters      map[string]struct{}
	starterMinWordLen     int
	starterRequireSpace   bool

	ellipsisTreatAsBoundary bool
	ellipsisPats            []string
	ellipsisFollowedByUpper bool // "followed_by_capital" => boundary
	ellipsisFollowedByLower bool // "followed_by_lowercase" => boundary (almost always false)
	ellipsisExceptions      []compiledException

	fastSuppress  []fastPattern
	regexSuppress []*regexp.Regexp

	fingerprint string
}

type compiledPattern struct {
	text     string
	strength int
}

type compiledException struct {
	re       *regexp.Regexp
	boundary bool
}

type fastPattern struct {
	char      rune
	before    string // "alpha" | "alnum" | "whitespace" | single char literal | ""
	after     string
	lineStart bool
}

func (t *Table) Code() string { return t.code }
func (t *Table) Name() string { return t.name }
func (t *Table) NumEnclosureTypes() int { return t.numEnclosure }
func (t *Table) Fingerprint() string { return t.fingerprint }

// IsTerminator reports whether r is a single-character terminator.
func (t *Table) IsTerminator(r rune) bool {
	_, ok := t.terminatorChars[r]
	return ok
}

// TerminatorPatternAt matches the longest registered multi-character
// terminator pattern starting at byte index i of text, greedily.
func (t *Table) TerminatorPatternAt(text string, i int) (patternLen int, strength int, ok bool) {
	best := -1
	bestStrength := 0
	for _, p := range t.terminatorPats {
		if strings.HasPrefix(text[i:], p.text) && len(p.text) > best {
			best = len(p.text)
			bestStrength = p.strength
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, bestStrength, true
}

// Enclosure returns the enclosure rule for r, if any.
func (t *Table) Enclosure(r rune) (EnclosureRule, bool) {
	rule, ok := t.enclosures[r]
	return rule, ok
}

// AbbreviationLookup reports whether word (expected to include its trailing
// '.') is a known abbreviation.
func (t *Table) AbbreviationLookup(word string) bool {
	return t.abbrev.contains(word)
}

// MultiDotAbbreviation reports whether joined matches the cross-chunk
// multi-dot abbreviation shape letter(1-2).letter(1-2). (e.g. "U.S.").
func (t *Table) MultiDotAbbreviation(joined string) bool {
	return multiDotPattern.MatchString(joined)
}

var multiDotPattern = regexp.MustCompile(`^\p{L}{1,2}\.\p{L}{1,2}\.$`)

// IsSentenceStarter reports whether word is a member of the
// sentence-starter set, subject to the configured minimum word length.
func (t *Table) IsSentenceStarter(word string) bool {
	if utf8.RuneCountInString(word) < t.starterMinWordLen {
		return false
	}
	_, ok := t.sentenceStarters[word]
	return ok
}

// IsWordRune reports whether r should be treated as part of a "word" for
// abbreviation lookback and sentence-starter scanning purposes. This reuses
// the xid identifier classification (the same library a SQL tokenizer would
// use to classify identifier characters) as a practical Unicode
// "is letter-ish" predicate.
func IsWordRune(r rune) bool {
	return xid.Start(r) || xid.Continue(r)
}

// EllipsisMatch matches a configured ellipsis pattern at byte index i.
func (t *Table) EllipsisMatch(text string, i int) (patternLen int, ok bool) {
	best := -1
	for _, p := range t.ellipsisPats {
		if strings.HasPrefix(text[i:], p) && len(p) > best {
			best = len(p)
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// EllipsisContextAccept evaluates the ellipsis context rule given
// the next non-space rune following the pattern. Exception regexes matched
// against window are checked first; if hasNext is false (no such rune, e.g.
// end of input) the result is the treat_as_boundary setting.
func (t *Table) EllipsisContextAccept(window string, nextRune rune, hasNext bool) bool {
	for _, exc := range t.ellipsisExceptions {
		if exc.re.MatchString(window) {
			return exc.boundary
		}
	}
	if !hasNext {
		return t.ellipsisTreatAsBoundary
	}
	if unicode.IsUpper(nextRune) {
		return t.ellipsisFollowedByUpper
	}
	if unicode.IsLower(nextRune) {
		return t.ellipsisFollowedByLower
	}
	return t.ellipsisTreatAsBoundary
}

// SuppressAt evaluates the fast single-character predicates first, then the
// slower regex patterns over a window of up to 32 bytes either side of i; a
// regex suppresses only when one of its matches covers byte i itself.
func (t *Table) SuppressAt(text string, i int, isLineStart bool) bool {
	r, w := utf8.DecodeRuneInString(text[i:])
	if w == 0 {
		return false
	}
	for _, fp := range t.fastSuppress {
		if fp.char != r {
			continue
		}
		if fp.lineStart && !isLineStart {
			continue
		}
		if fp.before != "" {
			pr, present := precedingRune(text, i)
			if !classMatches(fp.before, pr, present) {
				continue
			}
		}
		if fp.after != "" {
			fr, present := followingRune(text, i+w)
			if !classMatches(fp.after, fr, present) {
				continue
			}
		}
		return true
	}
	if len(t.regexSuppress) == 0 {
		return false
	}
	lo := i - 32
	if lo < 0 {
		lo = 0
	}
	hi := i + w + 32
	if hi > len(text) {
		hi = len(text)
	}
	window := text[lo:hi]
	rel := i - lo
	for _, re := range t.regexSuppress {
		for _, loc := range re.FindAllStringIndex(window, -1) {
			if loc[0] <= rel && rel < loc[1] {
				return true
			}
		}
	}
	return false
}

func precedingRune(text string, i int) (rune, bool) {
	if i <= 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return r, true
}

func followingRune(text string, i int) (rune, bool) {
	if i >= len(text) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return r, true
}

func classMatches(class string, r rune, present bool) bool {
	if !present {
		return false
	}
	r = foldWidth(r)
	// class may be a named class or a single literal character.
	switch class {
	case "alpha":
		return unicode.IsLetter(r) || xid.Start(r)
	case "alnum":
		return unicode.IsLetter(r) || unicode.IsDigit(r) || xid.Continue(r)
	case "digit":
		return unicode.IsDigit(r)
	case "whitespace":
		return unicode.IsSpace(r)
	default:
		cr, size := utf8.DecodeRuneInString(class)
		return size == len(class) && r == cr
	}
}

// foldWidth folds full-width ASCII variants (e.g. U+FF0E FULLWIDTH FULL
// STOP) to their narrow form, so decimal-suppression and terminator checks
// behave the same whether a CJK rule set sees "3.50" or "３．５０".
func foldWidth(r rune) rune {
	folded := width.Fold.String(string(r))
	fr, _ := utf8.DecodeRuneInString(folded)
	return fr
}
