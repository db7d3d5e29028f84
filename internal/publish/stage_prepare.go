package publish

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

// stagePrepareOutput creates the output directory and, when configured,
// empties it while keeping the directory itself.
func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	dir := bs.OutputDir()
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "resolve output directory").WithContext("path", dir).Build()
	}
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return errors.ValidationError("refusing to use the filesystem root as output directory").WithContext("path", dir).Build()
	}

	if err := os.MkdirAll(abs, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").WithContext("path", dir).Build()
	}
	if !bs.Config.Output.Clean {
		return nil
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "read output directory").WithContext("path", dir).Build()
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(abs, e.Name())); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "clean output directory").
				WithContext("path", filepath.Join(dir, e.Name())).
				Build()
		}
	}
	return nil
}
