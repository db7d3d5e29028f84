// Package preview serves a generated site for local browsing and rebuilds it
// when its inputs change.
package preview
