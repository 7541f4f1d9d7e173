package sentences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deltastack/sentences/internal/chunk"
	"github.com/deltastack/sentences/internal/dispatch"
)

func TestModeInternalConversion(t *testing.T) {
	assert.Equal(t, dispatch.Adaptive, ModeAdaptive.internal())
	assert.Equal(t, dispatch.Sequential, ModeSequential.internal())
	assert.Equal(t, dispatch.Parallel, ModeParallel.internal())
}

func TestThresholdsInternalDefaultsZeroFields(t *testing.T) {
	th := Thresholds{}.internal()
	assert.Equal(t, dispatch.DefaultT1, th.T1)
	assert.Equal(t, dispatch.DefaultT2, th.T2)
}

func TestThresholdsInternalPreservesNonZeroFields(t *testing.T) {
	th := Thresholds{BytesPerCore: 1000, TotalBytes: 2000}.internal()
	assert.Equal(t, 1000, th.T1)
	assert.Equal(t, 2000, th.T2)
}

func TestConfigChunkSizeDefault(t *testing.T) {
	assert.Equal(t, chunk.DefaultTargetSize, Config{}.chunkSize())
}

func TestConfigChunkSizeExplicit(t *testing.T) {
	assert.Equal(t, 4096, Config{ChunkSize: 4096}.chunkSize())
}
