// Package frontmatter separates YAML front matter from Markdown documents.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a front matter
// block that never closes.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Meta holds the front matter keys symdoc understands. Unknown keys are
// ignored.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Split separates `---` delimited YAML front matter from the Markdown body.
// Documents without front matter return had == false and the full input as
// body.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			return content[start : len(content)-3], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes the front matter into Meta.
func Parse(content []byte) (Meta, []byte, error) {
	var meta Meta
	fm, body, had, err := Split(content)
	if err != nil || !had || len(bytes.TrimSpace(fm)) == 0 {
		return meta, body, err
	}
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return Meta{}, body, err
	}
	return meta, body, nil
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
