package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddrDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("SSH_PORT", "")
	assert.Equal(t, ":8080", APIAddr())
	assert.Equal(t, ":2222", SSHAddr())

	t.Setenv("APP_PORT", "9000")
	assert.Equal(t, ":9000", APIAddr())
}

func TestEngineMoveTime(t *testing.T) {
	t.Setenv("ENGINE_MOVE_TIME_MS", "")
	assert.Equal(t, 500*time.Millisecond, EngineMoveTime())

	t.Setenv("ENGINE_MOVE_TIME_MS", "250")
	assert.Equal(t, 250*time.Millisecond, EngineMoveTime())

	t.Setenv("ENGINE_MOVE_TIME_MS", "junk")
	assert.Equal(t, 500*time.Millisecond, EngineMoveTime())
}

func TestAnalysisDepth(t *testing.T) {
	t.Setenv("ANALYSIS_DEPTH", "")
	assert.Equal(t, 0, AnalysisDepth())

	t.Setenv("ANALYSIS_DEPTH", "14")
	assert.Equal(t, 14, AnalysisDepth())
}

func TestDataDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("DATA_DIR", dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.DirExists(t, got)

	dbDir, err := ProfileDBDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "db"), dbDir)
	assert.DirExists(t, dbDir)
}
