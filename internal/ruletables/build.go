package ruletables

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Build validates and compiles a Config into an immutable Table. It is the
// only place where a malformed configuration can fail: once a Table exists
// it is used purely as read-only data, matching the "construction fails
// with ConfigInvalid" contract.
func Build(cfg Config) (*Table, error) {
	code := cfg.Metadata.Code
	if code == "" {
		return nil, &ErrConfigInvalid{Reason: "metadata.code is required"}
	}
	if !utf8.ValidString(cfg.Metadata.Name) {
		return nil, &ErrConfigInvalid{Code: code, Reason: "metadata.name is not valid UTF-8"}
	}

	t := &Table{
		code:            code,
		name:            cfg.Metadata.Name,
		terminatorChars: make(map[rune]struct{}, len(cfg.Terminators.Chars)),
		enclosures:      make(map[rune]EnclosureRule),
		abbrev:          newAbbreviationTrie(),
		sentenceStarters: make(map[string]struct{}),
	}

	for _, c := range cfg.Terminators.Chars {
		r, size := utf8.DecodeRuneInString(c)
		if size != len(c) || r == utf8.RuneError {
			return nil, &ErrConfigInvalid{Code: code, Reason: fmt.Sprintf("terminators.chars entry %q is not a single codepoint", c)}
		}
		t.terminatorChars[r] = struct{}{}
	}
	for _, p := range cfg.Terminators.Patterns {
		if p.Pattern == "" || !utf8.ValidString(p.Pattern) {
			return nil, &ErrConfigInvalid{Code: code, Reason: fmt.Sprintf("terminators.patterns entry %q is invalid", p.Pattern)}
		}
		t.terminatorPats = append(t.terminatorPats, compiledPattern{text: p.Pattern, strength: len(p.Pattern)})
	}

	if err := buildEnclosures(t, cfg.Enclosures); err != nil {
		return nil, err
	}

	for _, words := range cfg.Abbreviations {
		for _, w := range words {
			if !strings.HasSuffix(w, ".") {
				return nil, &ErrConfigInvalid{Code: code, Reason: fmt.Sprintf("abbreviation %q must end in '.'", w)}
			}
			t.abbrev.insert(w)
		}
	}

	starters, err := parseSentenceStarters(cfg.SentenceStarters)
	if err != nil {
		return nil, &ErrConfigInvalid{Code: code, Reason: err.Error()}
	}
	for _, words := range starters.categories {
		for _, w := range words {
			t.sentenceStarters[w] = struct{}{}
		}
	}
	t.starterMinWordLen = starters.minWordLength
	t.starterRequireSpace = starters.requireFollowingSpace

	if err := buildEllipsis(t, cfg.Ellipsis); err != nil {
		return nil, err
	}
	if err := buildSuppression(t, cfg.Suppression); err != nil {
		return nil, err
	}

	t.fingerprint = fingerprint(cfg)
	return t, nil
}

func buildEnclosures(t *Table, cfg EnclosuresConfig) error {
	typeID := 0
	for _, pair := range cfg.Pairs {
		openR, openSize := utf8.DecodeRuneInString(pair.Open)
		if openSize != len(pair.Open) || openR == utf8.RuneError {
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("enclosure open %q must be a single codepoint", pair.Open)}
		}
		if pair.Symmetric {
			if pair.Close != "" && pair.Close != pair.Open {
				return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("symmetric enclosure %q must not declare a distinct close", pair.Open)}
			}
			if existing, ok := t.enclosures[openR]; ok && !existing.Symmetric {
				return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("enclosure %q has conflicting symmetric/asymmetric directions", pair.Open)}
			}
			t.enclosures[openR] = EnclosureRule{TypeID: typeID, Delta: 0, Symmetric: true}
			typeID++
			continue
		}

		closeR, closeSize := utf8.DecodeRuneInString(pair.Close)
		if closeSize != len(pair.Close) || closeR == utf8.RuneError {
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("enclosure close %q must be a single codepoint", pair.Close)}
		}
		if _, ok := t.enclosures[openR]; ok {
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("enclosure open %q declared more than once", pair.Open)}
		}
		if _, ok := t.enclosures[closeR]; ok {
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("enclosure close %q conflicts with existing rule", pair.Close)}
		}
		t.enclosures[openR] = EnclosureRule{TypeID: typeID, Delta: +1}
		t.enclosures[closeR] = EnclosureRule{TypeID: typeID, Delta: -1}
		typeID++
	}
	t.numEnclosure = typeID
	return nil
}

func parseSentenceStarters(raw map[string]any) (sentenceStarters, error) {
	out := sentenceStarters{
		categories:            make(map[string][]string),
		requireFollowingSpace: true,
		minWordLength:         1,
	}
	for key, val := range raw {
		switch key {
		case "require_following_space":
			b, ok := val.(bool)
			if !ok {
				return out, fmt.Errorf("sentence_starters.require_following_space must be a bool")
			}
			out.requireFollowingSpace = b
		case "min_word_length":
			switch n := val.(type) {
			case int64:
				out.minWordLength = int(n)
			case float64:
				out.minWordLength = int(n)
			default:
				return out, fmt.Errorf("sentence_starters.min_word_length must be an integer")
			}
		default:
			words, err := toStringSlice(val)
			if err != nil {
				return out, fmt.Errorf("sentence_starters.%s: %w", key, err)
			}
			out.categories[key] = words
		}
	}
	return out, nil
}

func toStringSlice(val any) ([]string, error) {
	list, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of strings")
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a list of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func buildEllipsis(t *Table, cfg EllipsisConfig) error {
	t.ellipsisTreatAsBoundary = cfg.TreatAsBoundary
	t.ellipsisPats = append([]string(nil), cfg.Patterns...)
	for _, p := range t.ellipsisPats {
		if p == "" || !utf8.ValidString(p) {
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("ellipsis pattern %q is invalid", p)}
		}
	}
	for _, rule := range cfg.ContextRules {
		switch rule.Condition {
		case "followed_by_capital":
			t.ellipsisFollowedByUpper = rule.Boundary
		case "followed_by_lowercase":
			t.ellipsisFollowedByLower = rule.Boundary
		default:
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("ellipsis context_rules: unknown condition %q", rule.Condition)}
		}
	}
	for _, exc := range cfg.Exceptions {
		re, err := regexp.Compile(exc.Regex)
		if err != nil {
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("ellipsis exception regex %q: %s", exc.Regex, err)}
		}
		t.ellipsisExceptions = append(t.ellipsisExceptions, compiledException{re: re, boundary: exc.Boundary})
	}
	return nil
}

func buildSuppression(t *Table, cfg SuppressionConfig) error {
	for _, fp := range cfg.FastPatterns {
		r, size := utf8.DecodeRuneInString(fp.Char)
		if size != len(fp.Char) || r == utf8.RuneError {
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("suppression.fast_patterns char %q must be a single codepoint", fp.Char)}
		}
		t.fastSuppress = append(t.fastSuppress, fastPattern{
			char:      r,
			before:    fp.Before,
			after:     fp.After,
			lineStart: fp.LineStart,
		})
	}
	for _, rp := range cfg.RegexPatterns {
		re, err := regexp.Compile(rp.Pattern)
		if err != nil {
			return &ErrConfigInvalid{Code: t.code, Reason: fmt.Sprintf("suppression.regex_patterns %q: %s", rp.Pattern, err)}
		}
		t.regexSuppress = append(t.regexSuppress, re)
	}
	return nil
}

// fingerprint hashes a canonical rendering of part of cfg — the language
// code, terminators, enclosure pairs and abbreviations; ellipsis,
// suppression and sentence-starter settings are not included — and returns
// the first 16 bytes of the SHA-256 digest as hex. Grounded directly on
// preprocess.go's SchemaSuffixFromHash (same sha256 + hex idiom, applied to
// rule-table data instead of SQL document bodies).
func fingerprint(cfg Config) string {
	h := sha256.New()
	fmt.Fprintf(h, "code=%s\n", cfg.Metadata.Code)
	fmt.Fprintf(h, "terminators.chars=%v\n", cfg.Terminators.Chars)
	for _, p := range cfg.Terminators.Patterns {
		fmt.Fprintf(h, "terminators.pattern=%s\n", p.Pattern)
	}
	for _, p := range cfg.Enclosures.Pairs {
		fmt.Fprintf(h, "enclosure=%s,%s,%v\n", p.Open, p.Close, p.Symmetric)
	}
	keys := make([]string, 0, len(cfg.Abbreviations))
	for k := range cfg.Abbreviations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "abbr.%s=%v\n", k, cfg.Abbreviations[k])
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
