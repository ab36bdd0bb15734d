package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: commands, paths, file names.
	ColorCyan = lipgloss.Color("14")

	// ColorRed is used for unexpected failures.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (commands, paths, package names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleError styles failure headlines.
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Noun renders s in the noun style.
func Noun(s string) string {
	return StyleNoun.Render(s)
}

// Failure renders s in the error style.
func Failure(s string) string {
	return StyleError.Render(s)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
