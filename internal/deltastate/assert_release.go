//go:build !sentencesdebug

package deltastate

// DebugAssertionsEnabled is false outside builds tagged sentencesdebug.
const DebugAssertionsEnabled = false

func assertInvariant(cond bool, format string, args ...any) {}
