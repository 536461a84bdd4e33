package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vn.log")
	log, err := New(Config{Level: "debug", Encoding: "json", OutputPath: path, Service: "vn-server"})
	require.NoError(t, err)

	log.Named("GameService").Info("Option selected", zap.String("optionID", "opt_dohee_soup"))
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(raw))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "GameService", entry["logger"])
	assert.Equal(t, "opt_dohee_soup", entry["optionID"])
	assert.Equal(t, "vn-server", entry["service"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, entry, "caller")
}

func TestNew_DevelopmentAddsCaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vn.log")
	log, err := New(Config{Level: "info", Encoding: "json", OutputPath: path, Development: true})
	require.NoError(t, err)

	log.Info("Story graph loaded")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	assert.Contains(t, entry, "caller")
	assert.NotContains(t, entry, "service")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	level, err = ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "loud", Encoding: "xml", OutputPath: filepath.Join(t.TempDir(), "vn.log")})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
}
