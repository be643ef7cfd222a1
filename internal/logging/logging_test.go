package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, Config{Level: "info", Format: "json", Version: "1.2.3"})

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "dewey", rec["service"])
	assert.Equal(t, "1.2.3", rec["version"])
	assert.Equal(t, "v", rec["k"])
}

func TestNewWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, Config{Level: "debug"}).Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dewey.log")

	logger, closer, err := New(Config{Output: path})
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNew_StandardStreams(t *testing.T) {
	for _, out := range []string{"", "stderr", "stdout"} {
		_, closer, err := New(Config{Output: out})
		require.NoError(t, err, out)
		assert.NoError(t, closer.Close(), out)
	}
}
