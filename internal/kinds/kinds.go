// Package kinds holds the symbol-kind vocabulary shared by the graph engine
// and the renderer: kind names, the bucket tag set, the kind order policy and
// the display labels derived from kinds.
package kinds

import "strings"

// Known doclet kinds. Kinds are open-ended strings; these are the ones the
// engine assigns meaning to.
const (
	Module    = "module"
	Class     = "class"
	Interface = "interface"
	Mixin     = "mixin"
	Namespace = "namespace"
	Method    = "method"
	Member    = "member"
	Constant  = "constant"
	Typedef   = "typedef"
	Enum      = "enum"
	Event     = "event"
	Function  = "function"
)

// Scope values carried by doclets.
const (
	ScopeStatic   = "static"
	ScopeInstance = "instance"
	ScopeGlobal   = "global"
	ScopeInner    = "inner"
)

// ModulePrefix is the namespace prefix of module longnames.
const ModulePrefix = "module:"

// IsAnchored reports whether symbols of kind are rendered as an anchor on
// their parent's page when they have a parent.
func IsAnchored(kind string) bool {
	switch kind {
	case Member, Method, Event, Function:
		return true
	}
	return false
}

// Pluralize returns the plural of a kind or bucket word.
func Pluralize(s string) string {
	switch {
	case s == "":
		return s
	case strings.HasSuffix(s, "y"):
		return strings.TrimSuffix(s, "y") + "ies"
	case strings.HasSuffix(s, "s"):
		return s + "es"
	default:
		return s + "s"
	}
}

// Singularize reverses Pluralize. Words that are already singular are
// returned unchanged.
func Singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return strings.TrimSuffix(s, "ies") + "y"
	case strings.HasSuffix(s, "sses"):
		return strings.TrimSuffix(s, "es")
	case strings.HasSuffix(s, "ss"):
		return s
	case strings.HasSuffix(s, "s"):
		return strings.TrimSuffix(s, "s")
	default:
		return s
	}
}
