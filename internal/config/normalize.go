package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments made before validation.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerations, trims list entries and folds
// aliases. It mutates c in place.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizeLogging(&c.Logging, res)
	normalizeTemplates(c, res)
	normalizeOutput(&c.Output, res)
	return res, nil
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if raw := string(l.Level); raw != "" {
		lvl, err := logLevelNormalizer.NormalizeWithError(raw)
		switch {
		case err != nil:
			res.Warnings = append(res.Warnings, warnUnknown("logging.level", raw, string(LogLevelInfo)))
			l.Level = LogLevelInfo
		case lvl != l.Level:
			res.Warnings = append(res.Warnings, warnChanged("logging.level", l.Level, lvl))
			l.Level = lvl
		}
	}
	if raw := string(l.Format); raw != "" {
		f, err := logFormatNormalizer.NormalizeWithError(raw)
		switch {
		case err != nil:
			res.Warnings = append(res.Warnings, warnUnknown("logging.format", raw, string(LogFormatText)))
			l.Format = LogFormatText
		case f != l.Format:
			res.Warnings = append(res.Warnings, warnChanged("logging.format", l.Format, f))
			l.Format = f
		}
	}
}

func normalizeTemplates(c *Config, res *NormalizationResult) {
	t := &c.Templates
	if t.CleanOutput != nil {
		if *t.CleanOutput != c.Output.Clean {
			res.Warnings = append(res.Warnings, warnChanged("output.clean (via templates.clean_output)", c.Output.Clean, *t.CleanOutput))
		}
		c.Output.Clean = *t.CleanOutput
		t.CleanOutput = nil
	}
	t.KindOrder = trimList(t.KindOrder)
	t.KindExclude = trimList(t.KindExclude)
	t.JavaScripts = trimList(t.JavaScripts)
	t.Stylesheets = trimList(t.Stylesheets)
	t.SourceRevision = strings.TrimSpace(t.SourceRevision)
	t.HighlightStyle = strings.TrimSpace(t.HighlightStyle)
}

func normalizeOutput(o *OutputConfig, res *NormalizationResult) {
	ext := strings.TrimSpace(o.Extension)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		res.Warnings = append(res.Warnings, warnChanged("output.extension", o.Extension, "."+ext))
		ext = "." + ext
	}
	o.Extension = ext
}

func trimList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
