package render

import (
	"embed"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

//go:embed static
var staticFS embed.FS

// AssetsDir is the output subdirectory holding stylesheets and scripts.
const AssetsDir = "assets"

// HighlightCSS is the generated highlighter stylesheet inside AssetsDir.
const HighlightCSS = "highlight.css"

// CopyStatic copies the embedded static files into outDir/assets.
func CopyStatic(outDir string) ([]string, error) {
	var written []string
	err := fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel := path.Join(AssetsDir, path.Base(p))
		data, err := staticFS.ReadFile(p)
		if err != nil {
			return err
		}
		dest := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil { //nolint:gosec // site assets are world readable
			return err
		}
		written = append(written, rel)
		return nil
	})
	if err != nil {
		return written, errors.WrapError(err, errors.CategoryFileSystem, "copy static assets").Retryable().Build()
	}
	return written, nil
}

// WriteHighlightCSS writes the highlighter stylesheet into outDir/assets.
func (r *Renderer) WriteHighlightCSS(outDir string) error {
	dest := filepath.Join(outDir, AssetsDir, HighlightCSS)
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create assets directory").Build()
	}
	f, err := os.Create(dest) //nolint:gosec // path is built from the output directory
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create highlight stylesheet").Build()
	}
	if err := r.highlighter.WriteCSS(f); err != nil {
		_ = f.Close()
		return errors.WrapError(err, errors.CategoryRender, "write highlight stylesheet").Build()
	}
	return f.Close()
}

// StageAssets resolves user supplied script or stylesheet entries. URLs pass
// through; existing files (relative to baseDir) are copied to
// outDir/assets/<subdir> and replaced by their site path; anything else
// passes through unchanged.
func StageAssets(entries []string, subdir, baseDir, outDir string) ([]string, error) {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isURL(entry) {
			out = append(out, entry)
			continue
		}
		src := entry
		if !filepath.IsAbs(src) {
			src = filepath.Join(baseDir, src)
		}
		info, err := os.Stat(src)
		if err != nil || info.IsDir() {
			out = append(out, entry)
			continue
		}
		rel := path.Join(AssetsDir, subdir, filepath.Base(src))
		if err := copyFile(src, filepath.Join(outDir, filepath.FromSlash(rel))); err != nil {
			return out, errors.WrapError(err, errors.CategoryFileSystem, "stage asset").
				WithContext("path", src).
				Build()
		}
		out = append(out, rel)
	}
	return out, nil
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return err
	}
	in, err := os.Open(src) //nolint:gosec // user configured asset
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := os.Create(dest) //nolint:gosec // path is built from the output directory
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
