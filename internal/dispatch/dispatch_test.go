package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideExplicitModeBypassesArithmetic(t *testing.T) {
	th := DefaultThresholds()
	assert.Equal(t, Sequential, Decide(Sequential, 10_000_000, 1, th))
	assert.Equal(t, Parallel, Decide(Parallel, 10, 64, th))
}

func TestDecideAdaptiveSmallInputIsSequential(t *testing.T) {
	th := DefaultThresholds()
	mode := Decide(Adaptive, 64*1024, 4, th)
	assert.Equal(t, Sequential, mode)
}

func TestDecideAdaptiveLargeInputIsParallel(t *testing.T) {
	th := DefaultThresholds()
	mode := Decide(Adaptive, 10*1024*1024, 4, th)
	assert.Equal(t, Parallel, mode)
}

func TestDecideAdaptiveBoundary(t *testing.T) {
	th := Thresholds{T1: 1000, T2: 5000}

	// bytes_per_core below T1 but total_bytes at/above T2 -> parallel.
	assert.Equal(t, Parallel, Decide(Adaptive, 5000, 100, th))

	// bytes_per_core at/above T1 -> parallel even if total is small.
	assert.Equal(t, Parallel, Decide(Adaptive, 1000, 1, th))

	// both below thresholds -> sequential.
	assert.Equal(t, Sequential, Decide(Adaptive, 900, 1, th))
}

func TestDecideZeroCoresTreatedAsOne(t *testing.T) {
	th := DefaultThresholds()
	assert.Equal(t, Decide(Adaptive, 100, 1, th), Decide(Adaptive, 100, 0, th))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "adaptive", Adaptive.String())
	assert.Equal(t, "sequential", Sequential.String())
	assert.Equal(t, "parallel", Parallel.String())
}
