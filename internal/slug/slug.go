// Package slug generates deterministic, collision-free page filenames from
// symbol identifiers.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/symdoc/internal/util/sets"
)

// DefaultExt is the page extension appended to every allocated filename.
const DefaultExt = ".html"

// Slugify normalizes s into an ASCII slug: whitespace and any character
// outside [A-Za-z0-9_.-] become hyphens, hyphen runs collapse, leading and
// trailing hyphens are trimmed and the result is lowercased.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		if !isSlugRune(r) || unicode.IsSpace(r) {
			r = '-'
		}
		if r == '-' {
			if lastHyphen {
				continue
			}
			lastHyphen = true
		} else {
			lastHyphen = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Trim(b.String(), "-")
}

func isSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '.', r == '-':
		return true
	}
	return false
}

// Collision records a base filename that had to be suffixed.
type Collision struct {
	Identity string
	Base     string
	Filename string
}

// Allocator hands out unique filenames for one publish run. It is not safe
// for concurrent use.
type Allocator struct {
	ext        string
	taken      sets.Set[string]
	byIdentity map[string]string
	collisions []Collision
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithExtension overrides DefaultExt. An empty ext keeps the default.
func WithExtension(ext string) Option {
	return func(a *Allocator) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		a.ext = ext
	}
}

// NewAllocator creates an empty allocator.
func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{
		ext:        DefaultExt,
		taken:      sets.New[string](),
		byIdentity: make(map[string]string),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate returns the filename for identity. The first call derives it from
// the first label that slugs to something non-empty; later calls return the
// memoized filename regardless of labels. Taken names get -2, -3, ... suffixes
// in call order.
func (a *Allocator) Allocate(identity string, labels ...string) string {
	if f, ok := a.byIdentity[identity]; ok {
		return f
	}
	base := ""
	for _, l := range labels {
		if base = Slugify(l); base != "" {
			break
		}
	}
	if base == "" {
		base = "symbol"
	}

	filename := base + a.ext
	for i := 2; a.taken.Has(filename); i++ {
		filename = base + "-" + strconv.Itoa(i) + a.ext
	}
	if filename != base+a.ext {
		a.collisions = append(a.collisions, Collision{Identity: identity, Base: base + a.ext, Filename: filename})
	}
	a.taken.Add(filename)
	a.byIdentity[identity] = filename
	return filename
}

// Reserve marks filenames as taken without binding them to an identity, so
// later allocations step around them.
func (a *Allocator) Reserve(filenames ...string) {
	for _, f := range filenames {
		a.taken.Add(f)
	}
}

// Lookup returns the memoized filename for identity.
func (a *Allocator) Lookup(identity string) (string, bool) {
	f, ok := a.byIdentity[identity]
	return f, ok
}

// Taken reports whether filename has been handed out.
func (a *Allocator) Taken(filename string) bool { return a.taken.Has(filename) }

// Collisions returns the suffixed allocations in the order they happened.
func (a *Allocator) Collisions() []Collision { return a.collisions }
