package config

import (
	"bytes"
	stdErrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/logfields"
)

// IsTOML reports whether path is decoded as TOML.
func IsTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads, normalizes and validates a configuration file. Environment
// files next to it are loaded first and ${VAR} references are expanded.
func Load(configPath string) (*Config, error) {
	if loaded, err := loadEnvFiles(filepath.Dir(configPath)); err != nil {
		slog.Warn("Failed to load environment file", logfields.Error(err))
	} else if len(loaded) > 0 {
		slog.Debug("Loaded environment files", slog.Any("files", loaded))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				UserAction().
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data, IsTOML(configPath))
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data on top of Default and runs the normalize, default and
// validate passes.
func Parse(data []byte, isTOML bool) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if isTOML {
		meta, err := toml.Decode(expanded, &cfg)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode TOML config").Build()
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.ConfigError("unknown configuration key").
				WithContext("key", undecoded[0].String()).
				Build()
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stdErrors.Is(err, io.EOF) {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode YAML config").Build()
		}
	}
	applyEnvOverrides(&cfg)

	res, err := NormalizeConfig(&cfg)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "normalize").Build()
	}
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", slog.String("detail", w))
	}
	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configPath when it exists and falls back to the
// defaults otherwise. An explicitly requested missing file is an error.
func LoadOrDefault(configPath string, explicit bool) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil && !explicit && stdErrors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		applyEnvOverrides(&cfg)
		if _, err := NormalizeConfig(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return Load(configPath)
}
