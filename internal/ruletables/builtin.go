package ruletables

import (
	"embed"
	"fmt"
	"sort"
	"sync"
)

//go:embed lang/*.toml
var builtinFS embed.FS

var builtinFiles = map[string]string{
	"en": "lang/english.toml",
	"ja": "lang/japanese.toml",
}

var (
	builtinOnce  sync.Once
	builtinCache map[string]*Table
	builtinErr   map[string]error
)

func loadBuiltins() {
	builtinCache = make(map[string]*Table, len(builtinFiles))
	builtinErr = make(map[string]error, len(builtinFiles))
	for code, path := range builtinFiles {
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			builtinErr[code] = err
			continue
		}
		cfg, err := LoadBytes(data)
		if err != nil {
			builtinErr[code] = err
			continue
		}
		table, err := Build(cfg)
		if err != nil {
			builtinErr[code] = err
			continue
		}
		builtinCache[code] = table
	}
}

// BuiltinLanguages returns the sorted list of built-in language codes.
func BuiltinLanguages() []string {
	builtinOnce.Do(loadBuiltins)
	codes := make([]string, 0, len(builtinFiles))
	for code := range builtinFiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ErrUnsupportedLanguage is returned by Builtin for an unregistered code.
type ErrUnsupportedLanguage struct {
	Code string
}

func (e *ErrUnsupportedLanguage) Error() string {
	return fmt.Sprintf("ruletables: unsupported language %q", e.Code)
}

// Builtin returns the pre-built Table for a built-in language code.
func Builtin(code string) (*Table, error) {
	builtinOnce.Do(loadBuiltins)
	if err, ok := builtinErr[code]; ok {
		return nil, err
	}
	table, ok := builtinCache[code]
	if !ok {
		return nil, &ErrUnsupportedLanguage{Code: code}
	}
	return table, nil
}
