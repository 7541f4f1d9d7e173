// Package sentences implements a parallel sentence-boundary detection
// engine built on an associative state algebra (the Δ-Stack monoid, see
// internal/deltastate) that guarantees identical results between a
// single-pass sequential scan and a work-stealing parallel reduction over
// disjoint text chunks.
package sentences

import (
	"context"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deltastack/sentences/internal/chunk"
	"github.com/deltastack/sentences/internal/dispatch"
	"github.com/deltastack/sentences/internal/reduce"
	"github.com/deltastack/sentences/internal/ruletables"
)

// Processor owns rule tables and configuration for one language. It is
// safe for concurrent use by multiple goroutines: rule tables are
// immutable after construction and Process allocates no shared state.
type Processor struct {
	table  *ruletables.Table
	config Config
	log    logrus.FieldLogger
}

// WithLanguage builds a Processor from a built-in language code.
func WithLanguage(code string) (*Processor, error) {
	return WithConfig(Config{Language: code})
}

// WithConfig builds a Processor from a full configuration.
func WithConfig(cfg Config) (*Processor, error) {
	table, err := resolveTable(cfg)
	if err != nil {
		return nil, wrapInternalError(err)
	}
	return &Processor{
		table:  table,
		config: cfg,
		log:    logrus.StandardLogger(),
	}, nil
}

// WithLogger returns a copy of p that logs through logger instead of the
// package-level logrus logger.
func (p *Processor) WithLogger(logger logrus.FieldLogger) *Processor {
	clone := *p
	clone.log = logger
	return &clone
}

func resolveTable(cfg Config) (*ruletables.Table, error) {
	switch {
	case cfg.LanguageConfigBytes != nil:
		parsed, err := ruletables.LoadBytes(cfg.LanguageConfigBytes)
		if err != nil {
			return nil, err
		}
		return ruletables.Build(parsed)
	case cfg.LanguageConfigPath != "":
		parsed, err := ruletables.LoadFile(cfg.LanguageConfigPath)
		if err != nil {
			return nil, err
		}
		return ruletables.Build(parsed)
	default:
		table, err := ruletables.Builtin(cfg.Language)
		if err != nil {
			if _, ok := err.(*ruletables.ErrUnsupportedLanguage); ok {
				return nil, &UnsupportedLanguage{Code: cfg.Language}
			}
			return nil, err
		}
		return table, nil
	}
}

// Process splits text into sentence boundaries using the processor's
// language and configured mode.
func (p *Processor) Process(ctx context.Context, text string) (Output, error) {
	traceID := uuid.Must(uuid.NewV4()).String()
	log := p.log.WithField("trace_id", traceID)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return Output{}, Cancelled
	}

	cores := p.config.Threads
	if cores <= 0 {
		cores = runtime.GOMAXPROCS(0)
	}
	mode := dispatch.Decide(p.config.Mode.internal(), len(text), cores, p.config.Thresholds.internal())

	log.WithFields(logrus.Fields{
		"mode_requested": p.config.Mode.internal().String(),
		"mode_resolved":  mode.String(),
		"total_bytes":    len(text),
	}).Debug("sentences: dispatch decision")

	var boundaries []reduce.Boundary
	var threadsUsed int
	var chunkSizeUsed int

	switch mode {
	case dispatch.Sequential:
		// chunk.Split validates UTF-8 before partitioning; the single-chunk
		// result itself is not needed here.
		if _, err := chunk.Split(text, len(text)); err != nil {
			return Output{}, wrapInternalError(err)
		}
		var err error
		boundaries, err = reduce.Sequential(p.table, text)
		if err != nil {
			return Output{}, wrapInternalError(err)
		}
		threadsUsed = 1
		chunkSizeUsed = len(text)

	default: // dispatch.Parallel
		chunkSizeUsed = p.config.chunkSize()
		chunks, err := chunk.Split(text, chunkSizeUsed)
		if err != nil {
			return Output{}, wrapInternalError(err)
		}
		threadsUsed = cores
		if threadsUsed > len(chunks) {
			threadsUsed = len(chunks)
		}
		if threadsUsed < 1 {
			threadsUsed = 1
		}
		boundaries, err = reduce.Run(ctx, p.table, chunks, cores)
		if err != nil {
			return Output{}, wrapInternalError(err)
		}
	}

	out := Output{
		Boundaries: make([]Boundary, len(boundaries)),
		Metadata: Metadata{
			ModeUsed:        mode.String(),
			ThreadsUsed:     threadsUsed,
			ChunkSizeUsed:   chunkSizeUsed,
			TotalBytes:      len(text),
			Duration:        time.Since(start),
			Language:        p.table.Code(),
			RuleFingerprint: p.table.Fingerprint(),
			TraceID:         traceID,
		},
	}
	for i, b := range boundaries {
		out.Boundaries[i] = Boundary{
			ByteOffset: b.ByteOffset,
			CharOffset: b.CharOffset,
			Flags:      flagsFromInternal(b.Flags),
		}
	}

	log.WithFields(logrus.Fields{
		"boundaries": len(out.Boundaries),
		"duration":   out.Metadata.Duration,
	}).Debug("sentences: process complete")

	return out, nil
}

// ProcessReader reads r to completion and processes the result. It is a
// convenience for callers holding an io.Reader rather than a string; the
// full contents are buffered in memory; callers processing unbounded
// streams should chunk and call Process themselves.
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader) (Output, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Output{}, err
	}
	return p.Process(ctx, string(data))
}

// ProcessFile reads the file at path and processes its contents.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Output, error) {
	f, err := os.Open(path)
	if err != nil {
		return Output{}, err
	}
	defer f.Close()
	return p.ProcessReader(ctx, f)
}

// Language returns the code of the rule table this processor was built
// with.
func (p *Processor) Language() string { return p.table.Code() }
