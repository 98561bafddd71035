// Package picker is the one-shot chooser shown by `startpage open` when a
// query matches more than one shortcut.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/theysh/startpage/internal/icon"
	"github.com/theysh/startpage/internal/model"
	"github.com/theysh/startpage/internal/search"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	muted  = lipgloss.AdaptiveColor{Light: "#707070", Dark: "#888888"}

	queryStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	rowStyle    = lipgloss.NewStyle().PaddingLeft(2)
	activeStyle = lipgloss.NewStyle().PaddingLeft(1).Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(accent)
	matchStyle  = lipgloss.NewStyle().Foreground(accent).Underline(true)
	glyphStyle  = lipgloss.NewStyle().Foreground(muted)
	urlStyle    = lipgloss.NewStyle().Foreground(muted)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Choose: key.NewBinding(key.WithKeys("enter", "o")),
	Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c")),
}

// Picker lists fuzzy matches and lets the user choose one to open.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	offset    int
	selected  bool
	cancelled bool
	height    int
}

// New creates a Picker over results, best match first.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
		p.scroll()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, keys.Choose):
			p.selected = len(p.results) > 0
			return p, tea.Quit
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		}
		p.scroll()
	}

	return p, nil
}

// rows is how many results fit on screen; each takes two lines plus the
// header and footer.
func (p Picker) rows() int {
	n := (p.height - 4) / 2
	if n < 1 {
		return 1
	}
	return n
}

func (p *Picker) scroll() {
	n := p.rows()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+n {
		p.offset = p.cursor - n + 1
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("open %s  %s\n\n",
		queryStyle.Render(p.query),
		urlStyle.Render(fmt.Sprintf("(%d matches)", len(p.results)))))

	end := p.offset + p.rows()
	if end > len(p.results) {
		end = len(p.results)
	}
	for i := p.offset; i < end; i++ {
		r := p.results[i]
		line := glyphStyle.Render("["+icon.Letter(r.Shortcut.Title)+"]") + " " +
			highlight(r.Shortcut.Title, r.MatchedIndexes) + "\n" +
			"    " + urlStyle.Render(r.Shortcut.URL)

		style := rowStyle
		if i == p.cursor {
			style = activeStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(urlStyle.Render("j/k move · enter open · esc cancel"))
	return b.String()
}

// highlight marks the runes of title at the byte offsets the fuzzy matcher
// reported.
func highlight(title string, matched []int) string {
	if len(matched) == 0 {
		return title
	}
	hit := make(map[int]bool, len(matched))
	for _, m := range matched {
		hit[m] = true
	}

	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SelectedShortcut returns the chosen shortcut, or nil if the picker was
// cancelled or closed without a choice.
func (p Picker) SelectedShortcut() *model.Shortcut {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return nil
	}
	s := p.results[p.cursor].Shortcut
	return &s
}

// Cancelled reports whether the user backed out.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
