package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns how many terminal cells s occupies. ANSI codes take
// none, wide (CJK) characters take two.
func VisibleLength(s string) int {
	return lipgloss.Width(s)
}

// TruncateText truncates text to at most maxWidth cells, ending in the
// ellipsis when it had to cut. A wide character that would straddle the
// limit is dropped whole. Returns the truncated text and whether truncation
// occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if lipgloss.Width(text) <= maxWidth {
		return text, false
	}

	// Not enough room for any text next to the ellipsis.
	if maxWidth <= lipgloss.Width(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}

	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// CenterText truncates text to width cells and pads it on both sides so it
// sits in the middle of a width-wide cell. Extra padding goes to the right.
func CenterText(text string, width int, cfg TextConfig) string {
	text, _ = TruncateText(text, width, cfg)
	pad := width - lipgloss.Width(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}
