package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, Logger{}.level())
	assert.Equal(t, zerolog.DebugLevel, Logger{Level: "debug"}.level())
	assert.Equal(t, zerolog.Disabled, Logger{Level: "disabled"}.level())
	assert.Equal(t, zerolog.InfoLevel, Logger{Level: "loud"}.level())
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Format: "json"}.New(&buf)

	l.Info().Str("path", "muzu.kml").Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "muzu.kml", entry["path"])
	assert.Contains(t, entry, "time")
}

func TestNew_ConsoleWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Format: "console"}.New(&buf)

	l.Warn().Msg("careful")

	assert.Contains(t, buf.String(), "WRN")
	assert.Contains(t, buf.String(), "careful")
	assert.NotContains(t, buf.String(), "\x1b[")
}
