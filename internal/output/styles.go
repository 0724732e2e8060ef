package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: resource names, file paths, modes.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for fragment-origin resources and success marks.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for synthesized-origin resources and warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed or conflicting entries.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (resource names, paths, modes).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (generating, enriching, writing).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators, counters).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// OriginStyle returns the lipgloss style for a resource origin string.
// Unknown origins return an unstyled default.
func OriginStyle(origin string) lipgloss.Style {
	switch origin {
	case "fragment":
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case "config":
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// minResourceColumnWidth is the minimum width for the resource path column
// before the origin suffix. This keeps origin words aligned.
const minResourceColumnWidth = 48

// FormatResourceLine renders a resource identifier with a right-aligned,
// color-coded origin suffix.
//
// Format: r:<Kind/name>  <origin>
//
// The "r:" prefix is dim, the path is cyan, and the origin uses OriginStyle.
func FormatResourceLine(kind, name, origin string) string {
	path := fmt.Sprintf("%s/%s", kind, name)

	padding := minResourceColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("r:")
	styledPath := StyleNoun.Render(path)
	styledOrigin := OriginStyle(origin).Render(origin)

	return prefix + styledPath + strings.Repeat(" ", padding) + styledOrigin
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
