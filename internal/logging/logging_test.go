package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", "json", &buf)

	logger.Debug().Str("seed", "#334155").Msg("derived palette")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "brandaura", entry["service"])
	assert.Equal(t, "#334155", entry["seed"])
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", "json", &buf)

	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	logger := New("loud", "console", &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
