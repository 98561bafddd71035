package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Clock        lipgloss.Style
	Date         lipgloss.Style
	SearchBox    lipgloss.Style
	SearchActive lipgloss.Style
	Engine       lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardAdd      lipgloss.Style
	Glyph        lipgloss.Style
	Title        lipgloss.Style
	URL          lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style
	Error        lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Grayscale with a single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Date: lipgloss.NewStyle().
			Foreground(subtle),

		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		SearchActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Engine: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(primary),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Foreground(accent).
			Bold(true),

		CardAdd: lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder()).
			Foreground(subtle),

		Glyph: lipgloss.NewStyle().
			Bold(true),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),
	}
}
