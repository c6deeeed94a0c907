package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/infrastructure/config"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	c := FromConfig(config.LogConfig{Level: "debug", Development: true})
	assert.Equal(t, "debug", c.Level)
	assert.True(t, c.Development)
	assert.Equal(t, []string{"stdout"}, c.OutputPaths)
}

func TestJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Component("window").Info("Panel created", zap.String("panel_id", "win_1"))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"component":"window"`)
	assert.Contains(t, out, `"panel_id":"win_1"`)
	assert.NotContains(t, out, "hidden")
}

func TestSetLevel(t *testing.T) {
	logger, err := New(Config{Level: "info", OutputPaths: []string{filepath.Join(t.TempDir(), "out.log")}})
	require.NoError(t, err)

	assert.Equal(t, "info", logger.Level())
	require.NoError(t, logger.SetLevel("debug"))
	assert.Equal(t, "debug", logger.Level())
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	assert.Error(t, logger.SetLevel("nope"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Component("x").Info("dropped")
	})
}
