package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemporalLogger_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewTemporalLogger(zerolog.New(buf))

	logger.With("WorkflowID", "stills-1").Info("Starting ExtractStills", "timecodes", 2)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Starting ExtractStills", line["message"])
	assert.Equal(t, "stills-1", line["WorkflowID"])
	assert.EqualValues(t, 2, line["timecodes"])
}

func TestNewLogger_Level(t *testing.T) {
	buf := &bytes.Buffer{}

	logger := NewLogger("warn", buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	logger := NewLogger("loud", &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
