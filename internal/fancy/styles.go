package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Common styles that can be used across the application
var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	ComponentStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	ScriptStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ExampleStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	SourceStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// ScriptText styles a user script name
func ScriptText(text string) string {
	return ScriptStyle.Render(text)
}

// ExampleText styles a bundled example name
func ExampleText(text string) string {
	return ExampleStyle.Render(text)
}

// SourceText styles a source directory name
func SourceText(text string) string {
	return SourceStyle.Render(text)
}

// Validation-specific styling functions

// ValidText styles valid status text (green)
func ValidText(text string) string {
	return ScriptStyle.Render(text)
}

// WarningText styles warning text (orange)
func WarningText(text string) string {
	return WarningStyle.Render(text)
}

// ErrorText styles error text (red)
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// SummaryText styles summary information (dark gray)
func SummaryText(text string) string {
	return BranchStyle.Render(text)
}

// CountText styles count numbers (cyan)
func CountText(text string) string {
	return ComponentStyle.Render(text)
}
