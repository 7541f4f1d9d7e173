package sentences

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLanguageEnglish(t *testing.T) {
	p, err := WithLanguage("en")
	require.NoError(t, err)
	assert.Equal(t, "en", p.Language())
}

func TestWithLanguageJapanese(t *testing.T) {
	p, err := WithLanguage("ja")
	require.NoError(t, err)
	assert.Equal(t, "ja", p.Language())
}

func TestWithLanguageUnsupported(t *testing.T) {
	_, err := WithLanguage("xx-not-real")
	require.Error(t, err)
	var target *UnsupportedLanguage
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "xx-not-real", target.Code)
}

func TestProcessEndToEndEnglish(t *testing.T) {
	p, err := WithLanguage("en")
	require.NoError(t, err)

	out, err := p.Process(context.Background(), "Dr. Smith arrived. Then he left.")
	require.NoError(t, err)

	require.Len(t, out.Boundaries, 2)
	assert.Equal(t, len("Dr. Smith arrived."), out.Boundaries[0].ByteOffset)
	assert.Equal(t, "en", out.Metadata.Language)
	assert.NotEmpty(t, out.Metadata.TraceID)
	assert.NotEmpty(t, out.Metadata.RuleFingerprint)
}

func TestProcessEndToEndJapanese(t *testing.T) {
	p, err := WithLanguage("ja")
	require.NoError(t, err)

	out, err := p.Process(context.Background(), "これは日本語です。「こんにちは。」と言った。")
	require.NoError(t, err)
	require.Len(t, out.Boundaries, 2)
}

func TestProcessSentencesSplitsText(t *testing.T) {
	p, err := WithLanguage("en")
	require.NoError(t, err)

	text := "One. Two. Three."
	out, err := p.Process(context.Background(), text)
	require.NoError(t, err)

	sentences := out.Sentences(text)
	assert.Equal(t, []string{"One.", " Two.", " Three."}, sentences)
}

func TestProcessRespectsExplicitSequentialMode(t *testing.T) {
	p, err := WithConfig(Config{Language: "en", Mode: ModeSequential})
	require.NoError(t, err)

	out, err := p.Process(context.Background(), "Short text. More text.")
	require.NoError(t, err)
	assert.Equal(t, "sequential", out.Metadata.ModeUsed)
	assert.Equal(t, 1, out.Metadata.ThreadsUsed)
}

func TestProcessRespectsExplicitParallelMode(t *testing.T) {
	p, err := WithConfig(Config{Language: "en", Mode: ModeParallel, ChunkSize: 8, Threads: 4})
	require.NoError(t, err)

	out, err := p.Process(context.Background(), "One. Two. Three. Four. Five.")
	require.NoError(t, err)
	assert.Equal(t, "parallel", out.Metadata.ModeUsed)
}

func TestProcessCancelledContext(t *testing.T) {
	p, err := WithLanguage("en")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Process(ctx, "Some text.")
	require.ErrorIs(t, err, Cancelled)
}

func TestProcessRejectsInvalidUtf8UnderParallelMode(t *testing.T) {
	p, err := WithConfig(Config{Language: "en", Mode: ModeParallel, ChunkSize: 4})
	require.NoError(t, err)

	_, err = p.Process(context.Background(), "abc\xffdef ghij klmno")
	require.Error(t, err)
	var target *InvalidUtf8
	require.ErrorAs(t, err, &target)
}

func TestWithConfigInvalidLanguageConfig(t *testing.T) {
	_, err := WithConfig(Config{LanguageConfigBytes: []byte("not valid toml [[[")})
	require.Error(t, err)
}

func TestWithLoggerReturnsIndependentCopy(t *testing.T) {
	p, err := WithLanguage("en")
	require.NoError(t, err)

	silent := logrus.New()
	silent.SetOutput(io.Discard)

	p2 := p.WithLogger(silent)
	assert.NotSame(t, p, p2)
	assert.Equal(t, p.Language(), p2.Language())
}

func TestProcessFileMissing(t *testing.T) {
	p, err := WithLanguage("en")
	require.NoError(t, err)

	_, err = p.ProcessFile(context.Background(), "/nonexistent/path/does/not/exist.txt")
	require.Error(t, err)
}
