package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Title     *color.Color
	Label     *color.Color
	Unit      *color.Color
	Value     *color.Color
	Missing   *color.Color
	Muted     *color.Color
	Success   *color.Color
	Warning   *color.Color
	Error     *color.Color
	Highlight *color.Color

	// Series colors cycle across plotted lines
	Series []*color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Title:     color.New(color.FgCyan, color.Bold),
		Label:     color.New(color.FgYellow),
		Unit:      color.New(color.FgWhite, color.Faint),
		Value:     color.New(color.FgWhite),
		Missing:   color.New(color.FgHiBlack),
		Muted:     color.New(color.Faint),
		Success:   color.New(color.FgGreen),
		Warning:   color.New(color.FgYellow, color.Bold),
		Error:     color.New(color.FgRed),
		Highlight: color.New(color.FgMagenta, color.Bold),
		Series: []*color.Color{
			color.New(color.FgBlue),
			color.New(color.FgRed),
			color.New(color.FgGreen),
			color.New(color.FgYellow),
			color.New(color.FgMagenta),
			color.New(color.FgCyan),
		},
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.DisableColor()
	}
	return scheme
}

// ForcedColorScheme returns the default scheme with colors on even when
// stdout is not a terminal.
func ForcedColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.EnableColor()
	}
	return scheme
}

// SeriesColor returns the color of the i-th plotted series.
func (s *ColorScheme) SeriesColor(i int) *color.Color {
	if len(s.Series) == 0 {
		return s.Value
	}
	return s.Series[i%len(s.Series)]
}

func (s *ColorScheme) all() []*color.Color {
	out := []*color.Color{
		s.Title, s.Label, s.Unit, s.Value, s.Missing,
		s.Muted, s.Success, s.Warning, s.Error, s.Highlight,
	}
	return append(out, s.Series...)
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	if noColor {
		return "⚠"
	}
	return color.New(color.FgYellow).Sprint("⚠")
}
