package tui_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/theysh/startpage/internal/app"
	"github.com/theysh/startpage/internal/editor"
	"github.com/theysh/startpage/internal/engine"
	"github.com/theysh/startpage/internal/storage"
	"github.com/theysh/startpage/internal/tui"
	"github.com/theysh/startpage/internal/tui/layout"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var fixedNow = time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)

type harness struct {
	session *app.Session
	opened  []string
	copied  []string
}

func newHarness(t *testing.T) (*harness, tui.App) {
	t.Helper()
	h := &harness{session: app.Open(storage.NewMemoryStore(), nil)}
	a := tui.NewApp(tui.AppParams{
		Session: h.session,
		Opener: func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		},
		Clipboard: func(text string) error {
			h.copied = append(h.copied, text)
			return nil
		},
		Now: func() time.Time { return fixedNow },
	})
	return h, a.WithDimensions(80, 40) // 4 columns
}

func press(t *testing.T, a tui.App, keys ...string) (tui.App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var updated tea.Model
		updated, cmd = a.Update(msg)
		a = updated.(tui.App)
	}
	return a, cmd
}

// run executes cmd and feeds its message back, like the bubbletea runtime.
func run(t *testing.T, a tui.App, cmd tea.Cmd) tui.App {
	t.Helper()
	assert.Assert(t, cmd != nil)
	updated, _ := a.Update(cmd())
	return updated.(tui.App)
}

func TestApp_GridNavigation(t *testing.T) {
	_, a := newHarness(t)
	assert.Equal(t, a.Columns(), 4)
	assert.Equal(t, a.Cursor(), 0)

	tests := []struct {
		key  string
		want int
	}{
		{"j", 4},
		{"l", 5},
		{"j", 5}, // 8 cards, row 1 is the last
		{"k", 1},
		{"k", 1},
		{"h", 0},
		{"h", 0},
	}
	for _, tt := range tests {
		a, _ = press(t, a, tt.key)
		assert.Equal(t, a.Cursor(), tt.want, "after %s", tt.key)
	}
}

func TestApp_OpenSelected(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "l")
	a, cmd := press(t, a, "enter")
	a = run(t, a, cmd)

	assert.DeepEqual(t, h.opened, []string{"https://chat.openai.com"})
	assert.Equal(t, a.LastOpened(), "https://chat.openai.com")
}

func TestApp_OpenFailureShowsMessage(t *testing.T) {
	h, _ := newHarness(t)
	a := tui.NewApp(tui.AppParams{
		Session: h.session,
		Opener:  func(string) error { return errors.New("no display") },
		Now:     func() time.Time { return fixedNow },
	})

	a, cmd := press(t, a, "o")
	a = run(t, a, cmd)

	assert.Assert(t, is.Contains(a.Message(), "no display"))
	assert.Equal(t, a.LastOpened(), "")
}

func TestApp_AddShortcut(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "a")
	assert.Equal(t, a.Mode(), tui.ModeAdd)

	a, _ = press(t, a, "Test", "tab", "test.dev", "enter")

	assert.Equal(t, a.Mode(), tui.ModeNormal)
	links := h.session.Links()
	assert.Equal(t, len(links), 9)
	assert.Equal(t, links[8].Title, "Test")
	assert.Equal(t, links[8].URL, "https://test.dev")
	assert.Equal(t, a.Cursor(), 8)
}

func TestApp_AddShortcut_RequiresTitle(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "a", "tab", "test.dev", "enter")

	assert.Equal(t, a.Mode(), tui.ModeAdd)
	assert.Equal(t, len(h.session.Links()), 8)
	assert.Assert(t, is.Contains(layout.StripANSI(a.View()), "title is required"))

	a, _ = press(t, a, "esc")
	assert.Equal(t, a.Mode(), tui.ModeNormal)
	assert.Equal(t, len(h.session.Links()), 8)
}

func TestApp_EditShortcut(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "e")
	assert.Equal(t, a.Mode(), tui.ModeEdit)

	// Title is prefilled; append to it.
	a, _ = press(t, a, " Enterprise", "enter")

	links := h.session.Links()
	assert.Equal(t, len(links), 8)
	assert.Equal(t, links[0].ID, "1")
	assert.Equal(t, links[0].Title, "GitHub Enterprise")
	assert.Equal(t, links[0].URL, "https://github.com")
}

func TestApp_DeleteShortcut(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "d", "n")
	assert.Equal(t, len(h.session.Links()), 8)

	a, _ = press(t, a, "d")
	assert.Equal(t, a.Mode(), tui.ModeConfirmDelete)
	assert.Assert(t, is.Contains(layout.StripANSI(a.View()), "GitHub"))

	a, _ = press(t, a, "y")
	links := h.session.Links()
	assert.Equal(t, len(links), 7)
	assert.Equal(t, links[0].Title, "ChatGPT")
	assert.Equal(t, a.Mode(), tui.ModeNormal)
}

func TestApp_DeleteLastKeepsCursorInRange(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "j", "l", "l", "l") // index 7
	assert.Equal(t, a.Cursor(), 7)

	a, _ = press(t, a, "d", "y")
	assert.Equal(t, len(h.session.Links()), 7)
	assert.Equal(t, a.Cursor(), 6)
}

func TestApp_Reorder(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "L")
	links := h.session.Links()
	assert.Equal(t, links[0].Title, "ChatGPT")
	assert.Equal(t, links[1].Title, "GitHub")
	assert.Equal(t, a.Cursor(), 1)

	a, _ = press(t, a, "H")
	assert.Equal(t, h.session.Links()[0].Title, "GitHub")
	assert.Equal(t, a.Cursor(), 0)

	// Already first: rejected, nothing moves.
	a, _ = press(t, a, "H")
	assert.Equal(t, h.session.Links()[0].Title, "GitHub")
	assert.Equal(t, a.Cursor(), 0)
}

func TestApp_WebSearch(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "s")
	assert.Equal(t, a.Mode(), tui.ModeSearch)

	// Keys that are bindings in normal mode are plain text here.
	a, _ = press(t, a, "cats")
	a, cmd := press(t, a, "enter")
	a = run(t, a, cmd)

	assert.Equal(t, a.Mode(), tui.ModeNormal)
	assert.DeepEqual(t, h.opened, []string{"https://www.google.com/search?q=cats"})
}

func TestApp_WebSearch_EmptyQueryDoesNothing(t *testing.T) {
	h, a := newHarness(t)

	a, cmd := press(t, a, "s", "enter")

	assert.Assert(t, cmd == nil)
	assert.Equal(t, a.Mode(), tui.ModeSearch)
	assert.Equal(t, len(h.opened), 0)
}

func TestApp_CycleEngine(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "tab")
	assert.Equal(t, h.session.Engine().ID, engine.Baidu)
	assert.Assert(t, is.Contains(layout.StripANSI(a.View()), "Baidu"))

	press(t, a, "s", "tab", "go", "enter")
	assert.Equal(t, h.session.Engine().ID, engine.Bing)
}

func TestApp_Filter(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "/", "deep", "enter")
	assert.Equal(t, a.Mode(), tui.ModeNormal)

	visible := a.Visible()
	assert.Equal(t, len(visible), 1)
	assert.Equal(t, visible[0].Title, "DeepSeek")

	a, cmd := press(t, a, "enter")
	run(t, a, cmd)
	assert.DeepEqual(t, h.opened, []string{"https://chat.deepseek.com"})

	// Reordering a filtered view is refused.
	a, _ = press(t, a, "L")
	assert.Equal(t, h.session.Links()[3].Title, "DeepSeek")

	a, _ = press(t, a, "esc")
	assert.Equal(t, len(a.Visible()), 8)
}

func TestApp_YankURL(t *testing.T) {
	h, a := newHarness(t)

	a, _ = press(t, a, "Y")

	assert.DeepEqual(t, h.copied, []string{"https://github.com"})
	assert.Assert(t, is.Contains(a.Message(), "Copied"))
}

func TestApp_HelpOverlay(t *testing.T) {
	_, a := newHarness(t)

	a, _ = press(t, a, "?")
	assert.Equal(t, a.Mode(), tui.ModeHelp)
	assert.Assert(t, is.Contains(layout.StripANSI(a.View()), "web search"))

	a, _ = press(t, a, "esc")
	assert.Equal(t, a.Mode(), tui.ModeNormal)
}

func TestApp_Quit(t *testing.T) {
	_, a := newHarness(t)

	_, cmd := press(t, a, "q")
	assert.Assert(t, cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	assert.Assert(t, ok)
}

func TestApp_InitStartsClock(t *testing.T) {
	_, a := newHarness(t)
	assert.Assert(t, a.Init() != nil)
}

func TestView_NormalMode(t *testing.T) {
	_, a := newHarness(t)

	out := layout.StripANSI(a.View())

	for _, want := range []string{
		"09:07:00",
		"Tuesday, March 5",
		"Google",
		"Search Google...",
		"GitHub",
		"Superbed",
		"[G]",
		"https://github.com", // selected card URL in the status line
	} {
		assert.Assert(t, is.Contains(out, want))
	}
}

func TestView_EmptyGrid(t *testing.T) {
	session := app.Open(storage.NewMemoryStore(), nil)
	for _, s := range session.Links() {
		session.RemoveLink(s.ID)
	}
	a := tui.NewApp(tui.AppParams{Session: session, Now: func() time.Time { return fixedNow }})

	assert.Assert(t, is.Contains(layout.StripANSI(a.View()), "No shortcuts yet"))
}

func TestView_WideTitlesStayInsideCards(t *testing.T) {
	h, a := newHarness(t)
	for _, title := range []string{"哔哩哔哩弹幕视频网站首页", "百度一下"} {
		s, err := editor.NewShortcut(editor.Input{Title: title, URL: "example.cn"})
		assert.NilError(t, err)
		h.session.AddLink(s)
	}

	out := a.View()

	assert.Assert(t, is.Contains(layout.StripANSI(out), "哔哩哔哩弹幕..."))
	assert.Assert(t, is.Contains(layout.StripANSI(out), "百度一下"))
	for i, line := range strings.Split(out, "\n") {
		assert.Assert(t, lipgloss.Width(line) <= 80, "line %d is %d cells wide", i, lipgloss.Width(line))
	}
}
