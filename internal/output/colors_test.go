package output

import (
	"bytes"
	"testing"
)

func TestColorSchemes(t *testing.T) {
	for name, scheme := range map[string]*ColorScheme{
		"default": DefaultColorScheme(),
		"none":    NoColorScheme(),
		"forced":  ForcedColorScheme(),
	} {
		for i, c := range scheme.all() {
			if c == nil {
				t.Errorf("%s scheme: color %d should not be nil", name, i)
			}
		}
	}
}

func TestNoColorSchemePlain(t *testing.T) {
	scheme := NoColorScheme()
	if got := scheme.Title.Sprint("x"); got != "x" {
		t.Errorf("NoColorScheme should print plain text, got %q", got)
	}
}

func TestForcedColorSchemeEscapes(t *testing.T) {
	scheme := ForcedColorScheme()
	if got := scheme.Error.Sprint("x"); got == "x" {
		t.Error("ForcedColorScheme should add escape codes")
	}
}

func TestSeriesColorCycles(t *testing.T) {
	scheme := DefaultColorScheme()
	n := len(scheme.Series)
	if scheme.SeriesColor(0) != scheme.SeriesColor(n) {
		t.Error("series colors should cycle")
	}

	scheme.Series = nil
	if scheme.SeriesColor(3) != scheme.Value {
		t.Error("empty palette should fall back to the value color")
	}
}

func TestIcons(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(bool) string
		expected string
	}{
		{"success", SuccessIcon, "✓"},
		{"error", ErrorIcon, "✗"},
		{"warning", WarningIcon, "⚠"},
	}
	for _, tt := range tests {
		if got := tt.fn(true); got != tt.expected {
			t.Errorf("%s icon without color = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestSchemeForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if got := schemeFor(&buf, false, false).Title.Sprint("x"); got != "x" {
		t.Errorf("buffers are not terminals, got %q", got)
	}
	if IsTerminal(&buf) {
		t.Error("a buffer is not a terminal")
	}
}
