//go:build unit || !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	require.Equal(t, 80.0, cfg.Thresholds.CPUGood)
	require.Equal(t, 50.0, cfg.Thresholds.CPUWarning)
	require.Equal(t, 70.0, cfg.Thresholds.MemoryGood)
	require.Equal(t, 40.0, cfg.Thresholds.MemoryWarning)
	require.Equal(t, 30*time.Second, cfg.Slurm.CommandTimeout)
	require.True(t, cfg.ShowRecommendations)
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
thresholds:
  cpu_good: 90
slurm:
  command_timeout: 10s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 90.0, cfg.Thresholds.CPUGood)
	require.Equal(t, 10*time.Second, cfg.Slurm.CommandTimeout)
	// unset values keep their defaults
	require.Equal(t, 50.0, cfg.Thresholds.CPUWarning)
	require.Equal(t, "/usr/bin/squeue", cfg.Slurm.SqueuePath)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadLayersUserOverSystem(t *testing.T) {
	system := writeConfig(t, "system.yaml", `
thresholds:
  cpu_good: 60
  memory_good: 75
`)
	user := writeConfig(t, "user.yaml", `
thresholds:
  cpu_good: 90
`)

	cfg, err := loadPaths([]string{system, user}, false)
	require.NoError(t, err)

	// the user value wins where both files set a key
	require.Equal(t, 90.0, cfg.Thresholds.CPUGood)
	// system values survive where the user file is silent
	require.Equal(t, 75.0, cfg.Thresholds.MemoryGood)
	require.Equal(t, 40.0, cfg.Thresholds.MemoryWarning)
}

func TestLoadToleratesMissingLayer(t *testing.T) {
	user := writeConfig(t, "user.yaml", `
quota:
  high_usage_pct: 85
`)

	cfg, err := loadPaths([]string{filepath.Join(t.TempDir(), "absent.yaml"), user}, false)
	require.NoError(t, err)
	require.Equal(t, 85.0, cfg.Quota.HighUsagePct)
}
