package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL       string // The URL or path
	Text      string // Link text/title
	Tag       string // HTML tag (a, script, link, img)
	Attribute string // Attribute containing the link (href, src)
	Line      int    // Approximate element position in the document
}

// Page is what a single HTML document offers to and asks from the site.
type Page struct {
	Links []*Link
	IDs   map[string]struct{}
}

// HasID reports whether the page defines the fragment id.
func (p *Page) HasID(id string) bool {
	_, ok := p.IDs[id]
	return ok
}

// ExtractPage reads the links and element ids of an HTML file.
func ExtractPage(htmlPath string) (*Page, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithContext("html_path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close() // read-only
	}()

	return ExtractPageFromReader(file)
}

// ExtractPageFromReader reads the links and element ids of an HTML document.
func ExtractPageFromReader(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	page := &Page{IDs: make(map[string]struct{})}
	var lineNum int

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			lineNum++
			if id := getAttr(n, "id"); id != "" {
				page.IDs[id] = struct{}{}
			}
			if n.Data == "a" {
				if name := getAttr(n, "name"); name != "" {
					page.IDs[name] = struct{}{}
				}
			}
			if link := elementLink(n, lineNum); link != nil {
				page.Links = append(page.Links, link)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(doc)
	return page, nil
}

func elementLink(n *html.Node, lineNum int) *Link {
	var attr, text string
	switch n.Data {
	case "a":
		attr, text = "href", extractText(n)
	case "link":
		attr, text = "href", getAttr(n, "rel")
	case "img":
		attr, text = "src", getAttr(n, "alt")
	case "script", "source", "video", "audio":
		attr = "src"
	default:
		return nil
	}
	v := getAttr(n, attr)
	if v == "" {
		return nil
	}
	return &Link{URL: v, Text: text, Tag: n.Data, Attribute: attr, Line: lineNum}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}

// linkClass says how a link is verified.
type linkClass int

const (
	classSkip linkClass = iota
	classInternal
	classExternal
)

// classify sorts a link into skipped, internal (a path inside the site) or
// external (absolute or protocol-relative URL).
func classify(raw string) linkClass {
	for _, p := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(raw, p) {
			return classSkip
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return classInternal
	}
	if u.Scheme != "" || u.Host != "" {
		if u.Scheme == "" || u.Scheme == "http" || u.Scheme == "https" {
			return classExternal
		}
		return classSkip
	}
	return classInternal
}
