package config

import (
	stdErrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

var configValidate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfig checks struct constraints and the rules spanning fields.
func ValidateConfig(cfg *Config) error {
	if err := configValidate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if stdErrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.ValidationError(fmt.Sprintf("%s fails %q", fieldPath(fe.Namespace()), fe.Tag())).
				WithContext("field", fieldPath(fe.Namespace())).
				WithContext("value", fmt.Sprint(fe.Value())).
				WithContext("violations", len(verrs)).
				Build()
		}
		return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").Build()
	}

	if dir := cfg.Templates.Templates; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "templates directory not accessible").
				UserAction().
				WithContext("field", "templates.templates").
				WithContext("path", dir).
				Build()
		}
		if !info.IsDir() {
			return errors.ValidationError("templates.templates must be a directory").
				WithContext("path", dir).
				Build()
		}
	}
	if cfg.Output.ReportFile != "" && cfg.Output.ReportFile == cfg.Input.Path {
		return errors.ValidationError("output.report_file would overwrite input.path").
			WithContext("path", cfg.Output.ReportFile).
			Build()
	}
	return nil
}

// fieldPath turns "Config.output.extension" into "output.extension".
func fieldPath(ns string) string {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		return ns
	}
	return rest
}
