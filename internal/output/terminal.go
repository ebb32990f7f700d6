package output

import (
	"io"
	"os"
	"runtime"
)

// IsTerminal reports whether w is stdout or stderr attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if f == os.Stdout || f == os.Stderr {
		return checkIsTerminal(f)
	}
	return false
}

// supportsColors checks if the terminal supports colors.
func supportsColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// Modern Windows terminals support ANSI
	if runtime.GOOS == "windows" {
		return true
	}

	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// schemeFor picks the color scheme for a writer.
func schemeFor(w io.Writer, noColor, forceColors bool) *ColorScheme {
	switch {
	case noColor:
		return NoColorScheme()
	case forceColors:
		return ForcedColorScheme()
	case IsTerminal(w) && supportsColors():
		return DefaultColorScheme()
	}
	return NoColorScheme()
}
