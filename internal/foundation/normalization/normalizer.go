// Package normalization maps loosely written configuration strings onto
// typed enum values.
package normalization

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

// Func folds a raw string into its lookup key.
type Func func(string) string

// FoldKey trims, lower-cases and treats '-' and ' ' like '_', so "Static-Member"
// and "static_member" share a key.
func FoldKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return '_'
		}
		return r
	}, s)
}

// Normalizer converts strings into values of T.
type Normalizer[T comparable] struct {
	values   map[string]T
	fallback T
	fold     Func
	keys     []string
}

// Option customizes a Normalizer.
type Option func(*options)

type options struct {
	fold Func
}

// WithFold replaces FoldKey as the key folding function.
func WithFold(f Func) Option {
	return func(o *options) { o.fold = f }
}

// NewNormalizer builds a Normalizer from raw keys; Normalize returns fallback
// for anything it does not know.
func NewNormalizer[T comparable](values map[string]T, fallback T, opts ...Option) *Normalizer[T] {
	o := options{fold: FoldKey}
	for _, opt := range opts {
		opt(&o)
	}
	n := &Normalizer[T]{
		values:   make(map[string]T, len(values)),
		fallback: fallback,
		fold:     o.fold,
		keys:     make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := o.fold(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Lookup reports the value for raw and whether it was recognized.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	v, ok := n.values[n.fold(raw)]
	return v, ok
}

// Normalize returns the value for raw, or the fallback.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.Lookup(raw); ok {
		return v
	}
	return n.fallback
}

// NormalizeWithError returns a validation error naming the accepted keys when
// raw is not recognized.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if v, ok := n.Lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, errors.ValidationError("unrecognized value").
		WithContext("value", raw).
		WithContext("valid", strings.Join(n.keys, ", ")).
		Build()
}

// Valid reports whether v is one of the mapped values.
func (n *Normalizer[T]) Valid(v T) bool {
	for _, known := range n.values {
		if known == v {
			return true
		}
	}
	return false
}

// Keys returns the folded keys in sorted order.
func (n *Normalizer[T]) Keys() []string {
	return slices.Clone(n.keys)
}
