package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

const yamlHeader = `# symdoc configuration
# Values may reference environment variables as ${VAR}; .env and .env.local
# next to this file are loaded first.
`

// Example returns the configuration written by Init.
func Example() Config {
	cfg := Default()
	cfg.Input = InputConfig{Path: "doclets.json", Readme: "README.md"}
	cfg.Output.ReportFile = "symdoc-report.json"
	cfg.Templates.KindOrder = []string{"module", "class", "namespace"}
	cfg.Templates.KindExclude = []string{"events"}
	return cfg
}

// Init writes an example configuration file. The encoding follows the file
// extension.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	var buf bytes.Buffer
	example := Example()
	if IsTOML(configPath) {
		if err := toml.NewEncoder(&buf).Encode(example); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode example config").Build()
		}
	} else {
		buf.WriteString(yamlHeader)
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(example); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode example config").Build()
		}
		if err := enc.Close(); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode example config").Build()
		}
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
