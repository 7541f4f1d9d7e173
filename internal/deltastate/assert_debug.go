//go:build sentencesdebug

package deltastate

import "fmt"

// DebugAssertionsEnabled is true in builds tagged sentencesdebug, which pay
// the cost of the associativity recheck reduce runs on sampled chunk states
// before tree-combine.
const DebugAssertionsEnabled = true

// assertInvariant panics with detail if cond is false. Release builds never
// call this; they rely on finalise's own non-monotonic-offset check to
// raise Internal instead of crashing the process.
func assertInvariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("deltastate: invariant violated: "+format, args...))
	}
}
