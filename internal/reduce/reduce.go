// Package reduce implements the parallel reducer: a
// work-stealing map phase over chunks, an O(log N) tree-combine phase, and
// the finalise pass that turns surviving candidates into boundaries.
package reduce

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/deltastack/sentences/internal/chunk"
	"github.com/deltastack/sentences/internal/deltastate"
	"github.com/deltastack/sentences/internal/ruletables"
	"github.com/deltastack/sentences/internal/scanner"
)

// ErrCancelled is returned when ctx is cancelled before or during
// processing. No partial boundary output is produced.
var ErrCancelled = errors.New("reduce: cancelled")

// InvariantViolated is returned by finalise when candidate offsets are not
// monotonically non-decreasing — something Combine's associativity should
// make impossible. Rather than silently producing corrupted boundary
// output, this surfaces to the root package as sentences.Internal.
type InvariantViolated struct {
	Detail string
}

func (e *InvariantViolated) Error() string {
	return fmt.Sprintf("reduce: invariant violated: %s", e.Detail)
}

// Boundary is an accepted sentence boundary, with offsets relative to the
// start of the original input.
type Boundary struct {
	ByteOffset int
	CharOffset int
	Flags      deltastate.Flag
}

// Run executes the map/combine/finalise pipeline over chunks using up to
// workers goroutines for the map phase. workers <= 0 defaults to
// runtime.GOMAXPROCS(0).
func Run(ctx context.Context, table *ruletables.Table, chunks []chunk.Chunk, workers int) ([]Boundary, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(chunks) {
		workers = len(chunks)
	}

	states, err := mapPhase(ctx, table, chunks, workers)
	if err != nil {
		return nil, err
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	debugVerifyAssociativity(table, states)

	combined, err := treeCombine(ctx, table, states)
	if err != nil {
		return nil, err
	}

	combined = deltastate.FinalizeTrailingEllipsis(table, combined)
	return finalise(combined)
}

// debugVerifyAssociativity recomputes a sampled subset of adjacent triples
// two ways — left-grouped and right-grouped — and panics on disagreement.
// Only sentencesdebug builds pay for this; it exists to catch an
// associativity regression in Combine long before it could surface as a
// silently wrong boundary list.
func debugVerifyAssociativity(table *ruletables.Table, states []deltastate.PartialState) {
	if !deltastate.DebugAssertionsEnabled {
		return
	}
	for i := 0; i+2 < len(states); i += 3 {
		if !deltastate.VerifyAssociative(table, states[i], states[i+1], states[i+2]) {
			panic(fmt.Sprintf("reduce: associativity violated combining chunks %d, %d, %d", i, i+1, i+2))
		}
	}
}

// mapPhase schedules one scan task per chunk onto a bounded pool of
// workers, each pulling chunk indices off a shared channel so that a
// worker that finishes early steals the next available chunk instead of
// idling — the work-stealing map phase.
func mapPhase(ctx context.Context, table *ruletables.Table, chunks []chunk.Chunk, workers int) ([]deltastate.PartialState, error) {
	states := make([]deltastate.PartialState, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	indices := make(chan int, len(chunks))
	for i := range chunks {
		indices <- i
	}
	close(indices)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for idx := range indices {
				select {
				case <-gctx.Done():
					return ErrCancelled
				default:
				}
				states[idx] = scanner.Scan(table, chunks[idx].Text)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}

// treeCombine folds states pairwise in O(log N) rounds: each round combines
// adjacent pairs, halving the number of live states, until one remains.
// Combine is associative, so the tree shape never affects the result.
func treeCombine(ctx context.Context, table *ruletables.Table, states []deltastate.PartialState) (deltastate.PartialState, error) {
	level := states
	for len(level) > 1 {
		if err := checkCancelled(ctx); err != nil {
			return deltastate.PartialState{}, err
		}
		next := make([]deltastate.PartialState, (len(level)+1)/2)
		g, _ := errgroup.WithContext(ctx)
		for i := range next {
			i := i
			g.Go(func() error {
				lo := 2 * i
				if lo+1 >= len(level) {
					next[i] = level[lo]
					return nil
				}
				next[i] = deltastate.Combine(table, level[lo], level[lo+1])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return deltastate.PartialState{}, err
		}
		level = next
	}
	if len(level) == 0 {
		return deltastate.Identity(table.NumEnclosureTypes()), nil
	}
	return level[0], nil
}

// finalise walks the fully combined candidate list and decides which
// survive as boundaries. It also carries the one invariant check release
// builds rely on: candidate offsets must be monotonically non-decreasing,
// since every combine rule only ever appends or shifts forward. A
// violation here means Combine's associativity broke somewhere upstream,
// and is reported as InvariantViolated rather than silently returned as a
// corrupted boundary list.
func finalise(s deltastate.PartialState) ([]Boundary, error) {
	boundaries := make([]Boundary, 0, len(s.Candidates))
	prev := 0
	for _, c := range s.Candidates {
		if c.ByteOffset < prev || c.ByteOffset > s.ByteLen {
			return nil, &InvariantViolated{Detail: fmt.Sprintf(
				"candidate offset %d out of monotonic range (prev=%d, byteLen=%d)",
				c.ByteOffset, prev, s.ByteLen)}
		}
		prev = c.ByteOffset

		if c.LocalDepthSum != 0 {
			continue
		}
		if c.Flags.Has(deltastate.SuppressedTentative) {
			continue
		}
		boundaries = append(boundaries, Boundary{
			ByteOffset: c.ByteOffset,
			CharOffset: c.CharOffset,
			Flags:      c.Flags,
		})
	}
	return boundaries, nil
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}

// Sequential runs the scanner over the whole input as a single chunk and
// finalises directly, used by the dispatcher's sequential path and by
// tests asserting sequential/parallel equivalence.
func Sequential(table *ruletables.Table, text string) ([]Boundary, error) {
	s := scanner.Scan(table, text)
	s = deltastate.FinalizeTrailingEllipsis(table, s)
	return finalise(s)
}
