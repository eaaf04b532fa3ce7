package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medialog/service/internal/config"
)

func TestInitDevelopment(t *testing.T) {
	Init(&config.Config{AppEnv: "development", LogLevel: "debug"})

	require.NotNil(t, Log)
	assert.True(t, Log.Core().Enabled(-1), "debug level must be enabled") // zapcore.DebugLevel
}

func TestInitProduction(t *testing.T) {
	Init(&config.Config{AppEnv: "production", LogLevel: "warn"})

	require.NotNil(t, Log)
	assert.False(t, Log.Core().Enabled(0), "info must be disabled at warn level") // zapcore.InfoLevel
	assert.True(t, Log.Core().Enabled(1))                                        // zapcore.WarnLevel
}

func TestInitWithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "service.log")
	Init(&config.Config{AppEnv: "production", LogLevel: "info", LogPath: path})

	require.NotNil(t, Log)
	Log.Info("sink smoke test")

	info, err := os.Stat(path)
	require.NoError(t, err, "log file was not created")
	assert.Greater(t, info.Size(), int64(0))
}
