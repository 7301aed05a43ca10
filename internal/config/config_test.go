package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos/jobshopd/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "storage/instances", cfg.Storage.InstanceDir)
	assert.Equal(t, "minizinc", cfg.Solver.MiniZincBin)
	assert.Equal(t, 300*time.Second, cfg.Solver.MaxTimeLimit)
}

func TestLoad_CustomPort(t *testing.T) {
	t.Setenv("JOBSHOP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_InvalidPortFallsBackToDefault(t *testing.T) {
	t.Setenv("JOBSHOP_PORT", "not-a-port")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_PortOutOfRange(t *testing.T) {
	t.Setenv("JOBSHOP_PORT", "70000")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JOBSHOP_PORT")
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("JOBSHOP_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_SolveTimeoutCap(t *testing.T) {
	t.Setenv("JOBSHOP_SOLVE_TIMEOUT_MAX_SECS", "30")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Solver.MaxTimeLimit)
}

func TestLoad_UncappedTimeout(t *testing.T) {
	t.Setenv("JOBSHOP_SOLVE_TIMEOUT_MAX_SECS", "0")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Solver.MaxTimeLimit)
}

func TestLoad_CustomStorageDir(t *testing.T) {
	t.Setenv("JOBSHOP_STORAGE_DIR", "/var/lib/jobshopd/instances")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/jobshopd/instances", cfg.Storage.InstanceDir)
}
