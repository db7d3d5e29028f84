package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Longname", KeyLongname, "Foo#bar", Longname("Foo#bar")},
		{"Kind", KeyKind, "method", Kind("method")},
		{"Href", KeyHref, "foo.html#symbol-foo-bar", Href("foo.html#symbol-foo-bar")},
		{"Ref", KeyRef, "mymodule", Ref("mymodule")},
		{"Code", KeyCode, "SLUG_COLLISION", Code("SLUG_COLLISION")},
		{"Stage", KeyStage, "build_graph", Stage("build_graph")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Outcome", KeyOutcome, "success", Outcome("success")},
		{"URL", KeyURL, "http://localhost:8080", URL("http://localhost:8080")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Errorf("%s value mismatch: got %s want %s", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	if got := Count(3); got.Key != KeyCount || got.Value.Int64() != 3 {
		t.Errorf("unexpected count attr %v", got)
	}
	if got := Duration(1500 * time.Microsecond); got.Value.Float64() != 1.5 {
		t.Errorf("expected 1.5ms, got %v", got.Value.Float64())
	}
	if got := Error(nil); got.Value.String() != "" {
		t.Errorf("expected empty error attr, got %q", got.Value.String())
	}
	if got := Error(errors.New("boom")); got.Value.String() != "boom" {
		t.Errorf("expected boom, got %q", got.Value.String())
	}
}
