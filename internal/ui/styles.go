// Package ui provides terminal output styling for search results and
// diagnostics.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette.
const (
	ColorCyan     = "51"  // File paths
	ColorLime     = "154" // Match highlights, success
	ColorGray     = "245" // Secondary text, line numbers
	ColorDarkGray = "238" // Context lines, separators
	ColorRed      = "196" // Errors
	ColorYellow   = "220" // Warnings
	ColorWhite    = "255" // Headers
)

// Styles holds the output styles for result rendering.
type Styles struct {
	Path    lipgloss.Style
	LineNum lipgloss.Style
	Match   lipgloss.Style
	Context lipgloss.Style
	Score   lipgloss.Style
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns styled components for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Path:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		LineNum: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Match:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Context: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Score:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Path:    lipgloss.NewStyle(),
		LineNum: lipgloss.NewStyle(),
		Match:   lipgloss.NewStyle(),
		Context: lipgloss.NewStyle(),
		Score:   lipgloss.NewStyle(),
		Header:  lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}

// ShouldUseColor reports whether colored output is appropriate for the
// given file. Honors NO_COLOR.
func ShouldUseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
