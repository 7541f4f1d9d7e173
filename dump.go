package sentences

import (
	"fmt"

	"github.com/alecthomas/repr"
	"gopkg.in/yaml.v3"
)

// Dump renders o as a Go-syntax-ish value, in the style of repr.String,
// for use in debug logging and failing test output.
func (o Output) Dump() string {
	return repr.String(o, repr.Indent("  "))
}

// DumpYAML renders o as YAML, useful for diffing a processed Output
// against a golden fixture.
func (o Output) DumpYAML() (string, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("sentences: marshal output: %w", err)
	}
	return string(data), nil
}
