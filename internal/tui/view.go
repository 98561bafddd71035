package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theysh/startpage/internal/icon"
	"github.com/theysh/startpage/internal/model"
	"github.com/theysh/startpage/internal/tui/layout"
)

// dateFormat renders the line under the clock, e.g. "Monday, January 2".
const dateFormat = "Monday, January 2"

// renderView renders the full screen for the current mode.
func (a App) renderView() string {
	switch a.mode {
	case ModeAdd, ModeEdit, ModeConfirmDelete:
		return a.renderModal()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	content := a.styles.App.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		a.renderClock(),
		"",
		a.renderSearchBar(),
		"",
		a.renderGrid(),
		a.renderHelpBar(),
	))

	// Place keeps the output at exact terminal dimensions.
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Top, content)
}

func (a App) renderClock() string {
	return lipgloss.JoinVertical(
		lipgloss.Center,
		a.styles.Clock.Render(a.now.Format(a.clockFormat)),
		a.styles.Date.Render(a.now.Format(dateFormat)),
	)
}

func (a App) renderSearchBar() string {
	cfg := a.session.Engine()

	box := a.styles.SearchBox
	if a.mode == ModeSearch {
		box = a.styles.SearchActive
	}

	line := a.styles.Engine.Render(cfg.Name) + "  " + a.search.Input.View()
	return box.Width(a.layoutConfig.Input.SearchWidth + lipgloss.Width(cfg.Name) + 6).Render(line)
}

// renderGrid lays the visible shortcuts out row-major, scrolled so the
// selected row stays on screen.
func (a App) renderGrid() string {
	visible := a.Visible()

	if a.mode == ModeFilter || a.filter.Active() {
		header := a.filter.Input.View()
		if a.mode != ModeFilter {
			header = a.styles.Help.Render("/" + a.filter.Query)
		}
		if len(visible) == 0 {
			return lipgloss.JoinVertical(lipgloss.Left, header, a.styles.Empty.Render("No matches"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, a.renderCards(visible, false))
	}

	if len(visible) == 0 {
		return a.styles.Empty.Render("No shortcuts yet. Press a to add one.")
	}
	return a.renderCards(visible, true)
}

func (a App) renderCards(visible model.Collection, withAddTile bool) string {
	grid := a.layoutConfig.Grid
	cols := layout.CalculateColumns(a.width, grid)

	cards := make([]string, 0, len(visible)+1)
	for i, s := range visible {
		cards = append(cards, a.renderCard(s, i == a.cursor))
	}
	if withAddTile {
		cards = append(cards, a.renderAddTile())
	}

	totalRows := layout.RowCount(len(cards), cols)
	visibleRows := layout.CalculateVisibleRows(a.height, grid)
	offset := layout.CalculateRowOffset(a.cursor/cols, totalRows, visibleRows)

	gap := strings.Repeat(" ", grid.Gap)
	var rows []string
	for r := offset; r < totalRows && r < offset+visibleRows; r++ {
		start := r * cols
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		var row []string
		for i, card := range cards[start:end] {
			if i > 0 {
				row = append(row, gap)
			}
			row = append(row, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard draws one shortcut: a letter glyph standing in for the icon and
// the centered title.
func (a App) renderCard(s model.Shortcut, selected bool) string {
	inner := a.layoutConfig.Grid.CardWidth - 2
	style := a.styles.Card
	if selected {
		style = a.styles.CardSelected
	}

	glyph := "[" + icon.Letter(s.Title) + "]"
	title := layout.CenterText(s.Title, inner, a.layoutConfig.Text)

	return style.Width(inner).Render(
		a.styles.Glyph.Render(layout.CenterText(glyph, inner, a.layoutConfig.Text)) + "\n" + title,
	)
}

func (a App) renderAddTile() string {
	inner := a.layoutConfig.Grid.CardWidth - 2
	return a.styles.CardAdd.Width(inner).Render(
		layout.CenterText("+", inner, a.layoutConfig.Text) + "\n" +
			layout.CenterText("add (a)", inner, a.layoutConfig.Text),
	)
}

func (a App) renderHelpBar() string {
	var lines []string

	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else if s := a.Selected(); s != nil && a.mode == ModeNormal {
		lines = append(lines, a.styles.URL.Render(s.URL))
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, a.renderHints(a.contextualHints()))
	return strings.Join(lines, "\n")
}

func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.Title.Render("✓ " + a.messageText)
	default:
		return a.styles.Title.Render(a.messageText)
	}
}

func (a App) renderModal() string {
	var title, content strings.Builder

	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeAdd, ModeEdit:
		if a.mode == ModeAdd {
			title.WriteString("Add Shortcut\n\n")
		} else {
			title.WriteString("Edit Shortcut\n\n")
		}
		labels := [fieldCount]string{"Title:", "URL:", "Icon URL (optional):"}
		for i, label := range labels {
			if i > 0 {
				content.WriteString("\n\n")
			}
			content.WriteString(label + "\n")
			content.WriteString(a.form.Inputs[i].View())
		}
		if a.form.Err != nil {
			content.WriteString("\n\n" + a.styles.Error.Render(a.form.Err.Error()))
		}
		content.WriteString("\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Tab", Desc: "next"},
			{Key: "Enter", Desc: "save"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeConfirmDelete:
		name := a.deleteID
		if s := a.session.Link(a.deleteID); s != nil {
			name = s.Title
		}
		title.WriteString("Delete shortcut?\n\n")
		content.WriteString(a.styles.URL.Render(name) + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "y", Desc: "delete"},
			{Key: "n", Desc: "keep"},
		}))
	}

	modal := modalStyle.Render(a.styles.Title.Render(title.String()) + content.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("h/j/k/l  move\n")
	left.WriteString("Enter/o  open\n")
	left.WriteString("/        filter\n")
	left.WriteString("Esc      clear filter\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("search") + "\n")
	left.WriteString("s        web search\n")
	left.WriteString("Tab      next engine\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a    add\n")
	right.WriteString("e    edit\n")
	right.WriteString("d    delete\n")
	right.WriteString("H/L  move card\n")
	right.WriteString("Y    yank URL\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, modalStyle.Render(cols))
}
