package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Mood log backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	DataDir string
	Backend string
	Pace    float64
	Verbose bool
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("missing data dir")
	}
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	if c.Pace < 0 {
		return errors.New("pace must be >= 0")
	}
	return nil
}

func (c Config) ProfilePath() string   { return filepath.Join(c.DataDir, "user_profile.json") }
func (c Config) MoodLogPath() string   { return filepath.Join(c.DataDir, "mood_logs.json") }
func (c Config) MoodLogDBPath() string { return filepath.Join(c.DataDir, "mood_logs.db") }
func (c Config) ResourcesPath() string { return filepath.Join(c.DataDir, "resources.json") }

func defaultConfig() Config {
	return Config{
		DataDir: "data",
		Backend: BackendJSON,
		Pace:    1,
	}
}

// Load returns the defaults overridden by AURA_* variables, read from the
// environment or a local .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	cfg.DataDir = getEnv("AURA_DATA_DIR", cfg.DataDir)
	cfg.Backend = getEnv("AURA_BACKEND", cfg.Backend)
	if v := os.Getenv("AURA_PACE"); v != "" {
		pace, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse AURA_PACE: %w", err)
		}
		cfg.Pace = pace
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
