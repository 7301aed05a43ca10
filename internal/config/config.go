// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the jobshopd server.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Solver  SolverConfig
}

type ServerConfig struct {
	Port        int
	Env         string
	CORSOrigins []string
}

type StorageConfig struct {
	// InstanceDir is the directory holding stored instances as
	// <id>.json / <id>.dzn files.
	InstanceDir string
}

type SolverConfig struct {
	// MiniZincBin is the engine binary name or path.
	MiniZincBin string
	// MaxTimeLimit caps per-request solve budgets; 0 disables the cap.
	MaxTimeLimit time.Duration
}

// Load reads configuration from environment variables and returns a
// validated Config. Missing values fall back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        envInt("JOBSHOP_PORT", 8080),
			Env:         envString("JOBSHOP_ENV", "development"),
			CORSOrigins: splitCSV(envString("JOBSHOP_CORS_ORIGINS", "*")),
		},
		Storage: StorageConfig{
			InstanceDir: envString("JOBSHOP_STORAGE_DIR", "storage/instances"),
		},
		Solver: SolverConfig{
			MiniZincBin:  envString("JOBSHOP_MINIZINC_BIN", "minizinc"),
			MaxTimeLimit: envDurationSecs("JOBSHOP_SOLVE_TIMEOUT_MAX_SECS", 300*time.Second),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("JOBSHOP_PORT must be in 1..65535; got %d", c.Server.Port)
	}
	if len(c.Server.CORSOrigins) == 0 {
		return fmt.Errorf("JOBSHOP_CORS_ORIGINS must not be empty")
	}
	if c.Storage.InstanceDir == "" {
		return fmt.Errorf("JOBSHOP_STORAGE_DIR must not be empty")
	}
	if c.Solver.MiniZincBin == "" {
		return fmt.Errorf("JOBSHOP_MINIZINC_BIN must not be empty")
	}
	if c.Solver.MaxTimeLimit < 0 {
		return fmt.Errorf("JOBSHOP_SOLVE_TIMEOUT_MAX_SECS must be >= 0")
	}
	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
