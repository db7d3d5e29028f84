package doclet

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

// Load decodes a JSON array of doclets.
func Load(r io.Reader) ([]*Symbol, error) {
	var records []*Symbol
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInput, "decode doclets").
			Fatal().
			UserAction().
			Build()
	}
	return records, nil
}

// LoadFile reads doclets from path; "-" reads standard input.
func LoadFile(path string) ([]*Symbol, error) {
	if path == "-" {
		return Load(os.Stdin)
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInput, "open doclets").
			Fatal().
			UserAction().
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	records, err := Load(f)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return records, nil
}
