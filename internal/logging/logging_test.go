package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildLoggerDisabled(t *testing.T) {
	logger, err := BuildLogger(false, "")
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(0))
}

func TestBuildLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.log")

	logger, err := BuildLogger(true, path)
	require.NoError(t, err)

	logger.Info("imported wallet")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "imported wallet")
}

func TestBuildLoggerConsole(t *testing.T) {
	logger, err := BuildLogger(true, "")
	require.NoError(t, err)
	require.NotNil(t, logger)
}
