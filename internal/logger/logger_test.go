package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONAtConfiguredLevel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")
	log, err := New(Config{Level: "warn", Encoding: "json", OutputPath: out})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"shown"`)
	assert.Contains(t, string(data), `"level":"WARN"`)
	assert.Contains(t, string(data), `"timestamp":`)
}

func TestNewFallsBackOnBadLevel(t *testing.T) {
	log, err := New(Config{Level: "loud", Encoding: "yaml", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
