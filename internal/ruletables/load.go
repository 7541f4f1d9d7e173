package ruletables

import (
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// LoadBytes decodes a TOML language configuration from raw bytes.
func LoadBytes(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ErrConfigInvalid{Reason: fmt.Sprintf("toml decode: %s", err)}
	}
	return cfg, nil
}

// LoadReader decodes a TOML language configuration from r.
func LoadReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, &ErrConfigInvalid{Reason: fmt.Sprintf("reading config: %s", err)}
	}
	return LoadBytes(data)
}

// LoadFile decodes a TOML language configuration from a filesystem path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ErrConfigInvalid{Reason: fmt.Sprintf("reading %s: %s", path, err)}
	}
	return LoadBytes(data)
}
