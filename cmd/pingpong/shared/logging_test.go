package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pingpong.log")

	logger, closeFn, err := SetupLogger("debug", path)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.Info("Match started", "match", "m1")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Match started")
	assert.Contains(t, string(data), "match=m1")
}

func TestSetupLoggerRejectsBadLevel(t *testing.T) {
	_, _, err := SetupLogger("shouty", "")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestSetupLoggerBadPath(t *testing.T) {
	_, _, err := SetupLogger("info", filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.ErrorContains(t, err, "failed to open log file")
}
