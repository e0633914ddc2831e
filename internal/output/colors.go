package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Border    *color.Color
	Title     *color.Color
	Label     *color.Color
	Value     *color.Color
	Good      *color.Color
	Warn      *color.Color
	Bad       *color.Color
	Dim       *color.Color
	Highlight *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Border:    color.New(color.FgCyan),
		Title:     color.New(color.Bold),
		Label:     color.New(color.FgYellow),
		Value:     color.New(color.FgCyan),
		Good:      color.New(color.FgGreen),
		Warn:      color.New(color.FgYellow),
		Bad:       color.New(color.FgRed, color.Bold),
		Dim:       color.New(color.Faint),
		Highlight: color.New(color.FgMagenta, color.Bold),
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

// ForcedColorScheme returns the default scheme with colors enabled even when
// the process-wide color.NoColor is set (e.g. output is not a terminal).
func ForcedColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.EnableColor()
	}
	return scheme
}

func (s *ColorScheme) all() []*color.Color {
	return []*color.Color{s.Border, s.Title, s.Label, s.Value, s.Good, s.Warn, s.Bad, s.Dim, s.Highlight}
}

// Efficiency picks a color for an efficiency percentage.
func (s *ColorScheme) Efficiency(pct float64) *color.Color {
	switch {
	case pct >= 75:
		return s.Good
	case pct >= 40:
		return s.Warn
	default:
		return s.Bad
	}
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
