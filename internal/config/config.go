// Package config loads and validates the symdoc configuration file.
package config

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "symdoc.yaml"

// Config is the complete symdoc configuration.
type Config struct {
	Input     InputConfig     `yaml:"input" toml:"input"`
	Output    OutputConfig    `yaml:"output" toml:"output"`
	Templates TemplatesConfig `yaml:"templates" toml:"templates"`
	Render    RenderConfig    `yaml:"render" toml:"render"`
	Verify    VerifyConfig    `yaml:"verify" toml:"verify"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// InputConfig locates the doclet records and the optional landing README.
type InputConfig struct {
	Path   string `yaml:"path" toml:"path"`     // JSON doclet file, "-" for stdin
	Readme string `yaml:"readme" toml:"readme"` // Markdown shown on the index page
}

// OutputConfig controls where the site is written.
type OutputConfig struct {
	Directory  string `yaml:"directory" toml:"directory" validate:"required"`
	Clean      bool   `yaml:"clean" toml:"clean"`
	ReportFile string `yaml:"report_file,omitempty" toml:"report_file,omitempty"`
	Extension  string `yaml:"extension" toml:"extension" validate:"required,startswith=.,excludes=/"`
}

// TemplatesConfig holds the publisher options that shape the pages.
type TemplatesConfig struct {
	Title         string `yaml:"title" toml:"title"`
	ShowKindIcons bool   `yaml:"show_kind_icons" toml:"show_kind_icons"`
	// CleanOutput is accepted as an alias of output.clean.
	CleanOutput    *bool     `yaml:"clean_output,omitempty" toml:"clean_output,omitempty"`
	Templates      string    `yaml:"templates,omitempty" toml:"templates,omitempty"`
	JavaScripts    []string  `yaml:"javascripts,omitempty" toml:"javascripts,omitempty" validate:"dive,required"`
	Stylesheets    []string  `yaml:"stylesheets,omitempty" toml:"stylesheets,omitempty" validate:"dive,required"`
	KindOrder      []string  `yaml:"kind_order,omitempty" toml:"kind_order,omitempty"`
	KindExclude    []string  `yaml:"kind_exclude,omitempty" toml:"kind_exclude,omitempty"`
	HighlightStyle string    `yaml:"highlight_style" toml:"highlight_style"`
	SourceRevision string    `yaml:"source_revision" toml:"source_revision"`
	Nav            NavConfig `yaml:"nav" toml:"nav"`
}

// NavConfig tunes the top-level navigation.
type NavConfig struct {
	PromoteModuleMembers bool `yaml:"promote_module_members" toml:"promote_module_members"`
}

// RenderConfig controls page generation.
type RenderConfig struct {
	Concurrency       int  `yaml:"concurrency" toml:"concurrency" validate:"gte=1,lte=64"`
	CompactWhitespace bool `yaml:"compact_whitespace" toml:"compact_whitespace"`
}

// VerifyConfig controls the post-build link check.
type VerifyConfig struct {
	Enabled      bool `yaml:"enabled" toml:"enabled"`
	FailOnBroken bool `yaml:"fail_on_broken" toml:"fail_on_broken"`
	// External also requests absolute http(s) URLs.
	External bool `yaml:"external" toml:"external"`
}

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level" toml:"level"`
	Format LogFormat `yaml:"format" toml:"format"`
}

// Source revision modes. Any other value is shown verbatim.
const (
	SourceRevisionAuto = "auto"
	SourceRevisionNone = "none"
)
