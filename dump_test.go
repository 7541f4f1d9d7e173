package sentences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputDumpContainsBoundaries(t *testing.T) {
	p, err := WithLanguage("en")
	require.NoError(t, err)

	out, err := p.Process(context.Background(), "Dr. Smith arrived. Then he left.")
	require.NoError(t, err)

	dump := out.Dump()
	assert.Contains(t, dump, "Boundaries")
}

func TestOutputDumpYAMLRoundTrips(t *testing.T) {
	p, err := WithLanguage("en")
	require.NoError(t, err)

	out, err := p.Process(context.Background(), "One. Two.")
	require.NoError(t, err)

	data, err := out.DumpYAML()
	require.NoError(t, err)
	assert.Contains(t, data, "boundaries")
}
