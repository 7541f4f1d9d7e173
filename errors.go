package sentences

import (
	"fmt"

	"github.com/deltastack/sentences/internal/chunk"
	"github.com/deltastack/sentences/internal/reduce"
	"github.com/deltastack/sentences/internal/ruletables"
)

// UnsupportedLanguage is returned by WithLanguage for an unregistered
// built-in language code.
type UnsupportedLanguage struct {
	Code string
}

func (e *UnsupportedLanguage) Error() string {
	return fmt.Sprintf("sentences: unsupported language %q", e.Code)
}

// ConfigInvalid is returned when a language configuration fails to build:
// a malformed pattern, conflicting enclosure directions, or invalid UTF-8
// in the configuration data.
type ConfigInvalid struct {
	Reason string
}

func (e *ConfigInvalid) Error() string {
	return fmt.Sprintf("sentences: config invalid: %s", e.Reason)
}

// InvalidUtf8 is returned when input passed to Process is not valid UTF-8.
type InvalidUtf8 struct {
	BytePosition int
}

func (e *InvalidUtf8) Error() string {
	return fmt.Sprintf("sentences: invalid utf-8 at byte %d", e.BytePosition)
}

// Cancelled is returned when a Process call's context is cancelled before
// or during execution. No partial output is returned alongside it.
var Cancelled = fmt.Errorf("sentences: cancelled")

// Internal is returned when an invariant the engine depends on was
// violated — a case that should be impossible if Combine's associativity
// holds. It never indicates a problem with the caller's input; it means a
// reduction produced a candidate list that finalise could not trust, and
// the result was discarded rather than silently returned corrupted.
type Internal struct {
	Detail string
}

func (e *Internal) Error() string {
	return fmt.Sprintf("sentences: internal: %s", e.Detail)
}

// wrapInternalError maps errors surfaced by the internal packages onto the
// public error types returned by Processor methods.
func wrapInternalError(err error) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *chunk.InvalidUtf8:
		return &InvalidUtf8{BytePosition: e.BytePosition}
	case *ruletables.ErrConfigInvalid:
		return &ConfigInvalid{Reason: e.Reason}
	case *reduce.InvariantViolated:
		return &Internal{Detail: e.Detail}
	}
	if err == reduce.ErrCancelled {
		return Cancelled
	}
	return err
}
