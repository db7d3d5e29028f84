package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvLogLevel overrides logging.level when set.
const EnvLogLevel = "SYMDOC_LOG_LEVEL"

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local from dir without overriding
// variables already present in the process environment. It returns the
// files that were applied.
func loadEnvFiles(dir string) ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

func applyEnvOverrides(cfg *Config) {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Logging.Level = LogLevel(lvl)
	}
}
