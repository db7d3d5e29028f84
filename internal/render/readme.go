package render

import (
	"os"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/frontmatter"
	"git.home.luguber.info/inful/symdoc/internal/markdown"
)

// LoadReadme converts a Markdown README into landing page content. A title
// in its front matter replaces the site title on the index page.
func LoadReadme(path string) (IndexContent, error) {
	if path == "" {
		return IndexContent{}, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // user configured README
	if err != nil {
		return IndexContent{}, errors.WrapError(err, errors.CategoryInput, "read README").
			WithContext("path", path).
			Build()
	}
	meta, body, err := frontmatter.Parse(data)
	if err != nil {
		return IndexContent{}, errors.WrapError(err, errors.CategoryInput, "parse README front matter").
			WithContext("path", path).
			Build()
	}
	html, err := markdown.New(true).Convert(body)
	if err != nil {
		return IndexContent{}, errors.WrapError(err, errors.CategoryRender, "convert README").
			WithContext("path", path).
			Build()
	}
	return IndexContent{Title: meta.Title, Readme: html}, nil
}
