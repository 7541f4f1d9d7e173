package ruletables

// Config is the decoded form of the language-configuration TOML schema
// described by the language pack TOML files. It is pure data: loading a Config never touches
// the scanner or the reducer. Build compiles a Config into an immutable
// *Table.
type Config struct {
	Metadata      MetadataConfig      `toml:"metadata"`
	Terminators   TerminatorsConfig   `toml:"terminators"`
	Ellipsis      EllipsisConfig      `toml:"ellipsis"`
	Enclosures    EnclosuresConfig    `toml:"enclosures"`
	Suppression   SuppressionConfig   `toml:"suppression"`
	Abbreviations map[string][]string `toml:"abbreviations"`

	// SentenceStarters mixes fixed control keys (require_following_space,
	// min_word_length) with an open set of `<category>: [string]` word
	// lists, which doesn't map onto a single flat struct. It is decoded
	// generically and split apart in Build via parseSentenceStarters.
	SentenceStarters map[string]any `toml:"sentence_starters"`
}

type MetadataConfig struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
}

type TerminatorsConfig struct {
	Chars    []string          `toml:"chars"`
	Patterns []TerminatorPattern `toml:"patterns"`
}

type TerminatorPattern struct {
	Pattern string `toml:"pattern"`
	Name    string `toml:"name"`
}

type EllipsisConfig struct {
	TreatAsBoundary bool                `toml:"treat_as_boundary"`
	Patterns        []string            `toml:"patterns"`
	ContextRules    []EllipsisContextRule `toml:"context_rules"`
	Exceptions      []EllipsisException `toml:"exceptions"`
}

type EllipsisContextRule struct {
	Condition string `toml:"condition"` // "followed_by_capital" | "followed_by_lowercase"
	Boundary  bool   `toml:"boundary"`
}

type EllipsisException struct {
	Regex    string `toml:"regex"`
	Boundary bool   `toml:"boundary"`
}

type EnclosuresConfig struct {
	Pairs []EnclosurePair `toml:"pairs"`
}

type EnclosurePair struct {
	Open      string `toml:"open"`
	Close     string `toml:"close"`
	Symmetric bool   `toml:"symmetric"`
}

type SuppressionConfig struct {
	FastPatterns  []FastPattern  `toml:"fast_patterns"`
	RegexPatterns []RegexPattern `toml:"regex_patterns"`
}

type FastPattern struct {
	Char       string `toml:"char"`
	Before     string `toml:"before"`
	After      string `toml:"after"`
	LineStart  bool   `toml:"line_start"`
}

type RegexPattern struct {
	Pattern     string `toml:"pattern"`
	Description string `toml:"description"`
}

// sentenceStarters is the parsed form of the SentenceStarters config map
// after the fixed control keys have been split out from the word categories.
type sentenceStarters struct {
	categories            map[string][]string
	requireFollowingSpace bool
	minWordLength         int
}
