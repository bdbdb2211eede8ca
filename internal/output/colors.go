package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Title    *color.Color
	Header   *color.Color
	Config   *color.Color
	Winner   *color.Color
	Baseline *color.Color
	Success  *color.Color
	Error    *color.Color
	Warning  *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Title:    color.New(color.FgWhite, color.Bold),
		Header:   color.New(color.FgYellow),
		Config:   color.New(color.FgCyan),
		Winner:   color.New(color.FgGreen, color.Bold),
		Baseline: color.New(color.FgGreen),
		Success:  color.New(color.FgGreen),
		Error:    color.New(color.FgRed),
		Warning:  color.New(color.FgYellow),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	// Disable all colors
	scheme.Title.DisableColor()
	scheme.Header.DisableColor()
	scheme.Config.DisableColor()
	scheme.Winner.DisableColor()
	scheme.Baseline.DisableColor()
	scheme.Success.DisableColor()
	scheme.Error.DisableColor()
	scheme.Warning.DisableColor()

	return scheme
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
