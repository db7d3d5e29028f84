package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLongname   = "longname"
	KeyKind       = "kind"
	KeyHref       = "href"
	KeyRef        = "ref"
	KeyCode       = "code"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyBuildID    = "build_id"
	KeyOutcome    = "outcome"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Longname(l string) slog.Attr  { return slog.String(KeyLongname, l) }
func Kind(k string) slog.Attr      { return slog.String(KeyKind, k) }
func Href(h string) slog.Attr      { return slog.String(KeyHref, h) }
func Ref(r string) slog.Attr       { return slog.String(KeyRef, r) }
func Code(c string) slog.Attr      { return slog.String(KeyCode, c) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func BuildID(id string) slog.Attr  { return slog.String(KeyBuildID, id) }
func Outcome(o string) slog.Attr   { return slog.String(KeyOutcome, o) }
func URL(u string) slog.Attr       { return slog.String(KeyURL, u) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
