package render

import (
	"regexp"
	"strings"
)

var (
	codeBoundary   = regexp.MustCompile(`</?code`)
	interTagSpaces = regexp.MustCompile(`>\s+<`)
)

// Compact removes whitespace between tags. Everything from an opening <code
// up to its closing </code is kept verbatim.
func Compact(html string) string {
	parts := splitAtCode(html)
	var b strings.Builder
	b.Grow(len(html))
	for i, part := range parts {
		if strings.HasPrefix(part, "<code") {
			b.WriteString(part)
			continue
		}
		part = interTagSpaces.ReplaceAllString(part, "><")
		if i+1 < len(parts) {
			if trimmed := strings.TrimRight(part, " \t\r\n"); strings.HasSuffix(trimmed, ">") {
				part = trimmed
			}
		}
		b.WriteString(part)
	}
	return b.String()
}

// splitAtCode cuts s in front of every "<code" and "</code".
func splitAtCode(s string) []string {
	idx := codeBoundary.FindAllStringIndex(s, -1)
	parts := make([]string, 0, len(idx)+1)
	prev := 0
	for _, loc := range idx {
		if loc[0] > prev {
			parts = append(parts, s[prev:loc[0]])
		}
		prev = loc[0]
	}
	return append(parts, s[prev:])
}
