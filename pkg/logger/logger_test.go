package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"release", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"not-a-level", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		SetLevel(tt.in)
		assert.Equal(t, tt.want, Log.GetLevel(), "level %q", tt.in)
	}
}

func TestSetOutputKeepsLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("warn")
	var buf bytes.Buffer
	SetOutput(&buf)

	Log.Info().Msg("hidden")
	Log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleWriterTarget(t *testing.T) {
	t.Cleanup(func() { SetOutput(Console(os.Stdout)) })

	var buf bytes.Buffer
	SetOutput(Console(&buf))
	Log.Info().Int("products", 3).Msg("predictions generated")

	assert.Contains(t, buf.String(), "predictions generated")
	assert.Contains(t, buf.String(), "products=")
	assert.NotContains(t, buf.String(), `{"level"`)
}
