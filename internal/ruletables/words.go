package ruletables

import "unicode/utf8"

func (t *Table) StarterRequiresFollowingSpace() bool { return t.starterRequireSpace }
func (t *Table) StarterMinWordLength() int           { return t.starterMinWordLen }

// WordBefore scans backward from byte offset end (exclusive) over
// consecutive word runes and returns the word and the byte offset where it
// starts. Used to recover the word preceding a terminator dot for
// abbreviation lookback.
func WordBefore(text string, end int) (word string, start int) {
	i := end
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		if !IsWordRune(r) {
			break
		}
		i -= size
	}
	return text[i:end], i
}

// WordAt scans forward from byte offset start over consecutive word runes
// and returns the word and the byte offset just past it. Used to find the
// word following whitespace for sentence-starter checks.
func WordAt(text string, start int) (word string, end int) {
	i := start
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !IsWordRune(r) {
			break
		}
		i += size
	}
	return text[start:i], i
}

// SkipSpaces advances i over whitespace runes.
func SkipSpaces(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' && !isUnicodeSpace(r) {
			break
		}
		i += size
	}
	return i
}

func isUnicodeSpace(r rune) bool {
	switch r {
	case '　', ' ':
		return true
	}
	return false
}
