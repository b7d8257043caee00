package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var text, js bytes.Buffer
	logger := New(&text, &js, "warn", "json")

	logger.Info("hidden")
	logger.Warn("Trip deleted", "trip_id", "t1")

	assert.Empty(t, text.String())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &entry))
	assert.Equal(t, "Trip deleted", entry["msg"])
	assert.Equal(t, "t1", entry["trip_id"])
}

func TestNewText(t *testing.T) {
	var text, js bytes.Buffer
	logger := New(&text, &js, "debug", "text")

	logger.Debug("Balances computed", "friends", 3)

	assert.Empty(t, js.String())
	assert.Contains(t, text.String(), "Balances computed")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
