package kinds

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var labelMap = map[string]string{
	"member":          "property",
	"instance_member": "instance_property",
	"static_member":   "static_property",
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// Titleize turns "static_methods" into "Static Methods".
func Titleize(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// LabelOptions controls Label formatting.
type LabelOptions struct {
	Plural bool
	Title  bool
}

// Label returns the display label for a kind or bucket, e.g. "member" ->
// "property", "static_methods" with Title -> "Static Methods".
func Label(kind string, opts LabelOptions) string {
	k := strings.ToLower(Singularize(kind))
	result := k
	if mapped, ok := labelMap[k]; ok {
		result = mapped
	}
	if opts.Plural {
		result = Pluralize(result)
	}
	if opts.Title {
		result = Titleize(result)
	}
	return result
}

var iconMap = map[string]string{
	Function:  "F",
	Method:    "F",
	Member:    "P",
	Class:     "C",
	Interface: "I",
	Mixin:     "X",
	Namespace: "N",
	Typedef:   "T",
	Enum:      "U",
	Event:     "E",
	Module:    "M",
}

// Icon returns the one-letter badge for kind.
func Icon(kind string) string {
	k := strings.ToLower(kind)
	if icon, ok := iconMap[k]; ok {
		return icon
	}
	if k == "" {
		return "?"
	}
	return strings.ToUpper(k[:1])
}
