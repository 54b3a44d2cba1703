package logging

import "testing"

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := New("debug", format)
		if err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
		if !l.Core().Enabled(-1) {
			t.Fatalf("debug level not applied for %q", format)
		}
	}
	if _, err := New("loud", "json"); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Fatalf("expected error for bad format")
	}
}
