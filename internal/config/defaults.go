package config

import "git.home.luguber.info/inful/symdoc/internal/slug"

// Default returns a configuration with every default applied. Files are
// decoded on top of it so omitted keys keep their defaults.
func Default() Config {
	return Config{
		Output: OutputConfig{
			Directory: "./docs",
			Clean:     true,
			Extension: slug.DefaultExt,
		},
		Templates: TemplatesConfig{
			Title:          "API Documentation",
			ShowKindIcons:  true,
			HighlightStyle: "github",
			SourceRevision: SourceRevisionAuto,
		},
		Render: RenderConfig{
			Concurrency:       4,
			CompactWhitespace: true,
		},
		Verify: VerifyConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// applyDefaults fills values a file explicitly emptied.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = def.Output.Directory
	}
	if cfg.Output.Extension == "" {
		cfg.Output.Extension = def.Output.Extension
	}
	if cfg.Templates.Title == "" {
		cfg.Templates.Title = def.Templates.Title
	}
	if cfg.Templates.HighlightStyle == "" {
		cfg.Templates.HighlightStyle = def.Templates.HighlightStyle
	}
	if cfg.Templates.SourceRevision == "" {
		cfg.Templates.SourceRevision = def.Templates.SourceRevision
	}
	if cfg.Render.Concurrency == 0 {
		cfg.Render.Concurrency = def.Render.Concurrency
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
}
