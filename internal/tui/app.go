package tui

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/theysh/startpage/internal/app"
	"github.com/theysh/startpage/internal/browser"
	"github.com/theysh/startpage/internal/editor"
	"github.com/theysh/startpage/internal/engine"
	"github.com/theysh/startpage/internal/model"
	"github.com/theysh/startpage/internal/tui/layout"
)

// DefaultClockFormat is the time layout used when none is configured.
const DefaultClockFormat = "15:04:05"

// App is the bubbletea model for the terminal start page.
type App struct {
	session      *app.Session
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	opener      func(url string) error
	copyText    func(text string) error
	clock       func() time.Time
	clockFormat string
	now         time.Time

	mode   Mode
	cursor int // index into Visible()

	search   SearchState
	filter   FilterState
	form     FormState
	deleteID string
	helpFrom Mode
	lastOpen string

	messageText string
	messageType MessageType

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Session      *app.Session
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Opener       func(url string) error
	Clipboard    func(text string) error
	Now          func() time.Time
	ClockFormat  string
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	opener := params.Opener
	if opener == nil {
		opener = browser.Open
	}
	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	clock := params.Now
	if clock == nil {
		clock = time.Now
	}
	clockFormat := params.ClockFormat
	if clockFormat == "" {
		clockFormat = DefaultClockFormat
	}

	return App{
		session:      params.Session,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		opener:       opener,
		copyText:     copyText,
		clock:        clock,
		clockFormat:  clockFormat,
		now:          clock(),
		mode:         ModeNormal,
		search:       NewSearchState(layoutCfg, params.Session.Engine().Placeholder),
		filter:       NewFilterState(layoutCfg),
		form:         NewFormState(layoutCfg),
		width:        80,
		height:       24,
	}
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the index of the selected card in the visible grid.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the current status line text.
func (a App) Message() string {
	return a.messageText
}

// Visible returns the shortcuts currently shown in the grid, in display order.
func (a App) Visible() model.Collection {
	if !a.filter.Active() {
		return a.session.Links()
	}
	out := make(model.Collection, len(a.filter.Results))
	for i, r := range a.filter.Results {
		out[i] = r.Shortcut
	}
	return out
}

// Selected returns the shortcut under the cursor, or nil for an empty grid.
func (a App) Selected() *model.Shortcut {
	visible := a.Visible()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return nil
	}
	s := visible[a.cursor]
	return &s
}

// LastOpened returns the most recent URL handed to the browser.
func (a App) LastOpened() string {
	return a.lastOpen
}

// Columns returns the grid column count for the current width.
func (a App) Columns() int {
	return layout.CalculateColumns(a.width, a.layoutConfig.Grid)
}

type tickMsg time.Time

// openedMsg reports the outcome of handing a URL to the browser.
type openedMsg struct {
	url string
	err error
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) openCmd(url string) tea.Cmd {
	opener := a.opener
	return func() tea.Msg {
		return openedMsg{url: url, err: opener(url)}
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		a.now = time.Time(msg)
		return a, tick()

	case openedMsg:
		if msg.err != nil {
			a.setMessage(MessageError, "Could not open browser: "+msg.err.Error())
		} else {
			a.lastOpen = msg.url
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeAdd, ModeEdit:
			return a.updateForm(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.messageText = ""
	total := len(a.Visible())
	cols := a.Columns()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		a.cursor = layout.MoveCursor(a.cursor, total, cols, layout.DirUp)
	case key.Matches(msg, a.keys.Down):
		a.cursor = layout.MoveCursor(a.cursor, total, cols, layout.DirDown)
	case key.Matches(msg, a.keys.Left):
		a.cursor = layout.MoveCursor(a.cursor, total, cols, layout.DirLeft)
	case key.Matches(msg, a.keys.Right):
		a.cursor = layout.MoveCursor(a.cursor, total, cols, layout.DirRight)

	case key.Matches(msg, a.keys.Open):
		if s := a.Selected(); s != nil {
			return a, a.openCmd(s.URL)
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.CycleEngine):
		a.cycleEngine()

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filter.Input.SetValue(a.filter.Query)
		a.filter.Input.CursorEnd()
		return a, a.filter.Input.Focus()

	case key.Matches(msg, a.keys.Cancel):
		if a.filter.Active() {
			a.filter.Reset()
			a.cursor = 0
		}

	case key.Matches(msg, a.keys.Add):
		a.mode = ModeAdd
		a.form.Open(nil)

	case key.Matches(msg, a.keys.Edit):
		if s := a.Selected(); s != nil {
			a.mode = ModeEdit
			a.form.Open(s)
		}

	case key.Matches(msg, a.keys.Delete):
		if s := a.Selected(); s != nil {
			a.mode = ModeConfirmDelete
			a.deleteID = s.ID
		}

	case key.Matches(msg, a.keys.MoveLeft):
		a.move(-1)
	case key.Matches(msg, a.keys.MoveRight):
		a.move(1)

	case key.Matches(msg, a.keys.YankURL):
		if s := a.Selected(); s != nil {
			if err := a.copyText(s.URL); err != nil {
				a.setMessage(MessageError, "Copy failed: "+err.Error())
			} else {
				a.setMessage(MessageSuccess, "Copied "+s.URL)
			}
		}

	case key.Matches(msg, a.keys.Help):
		a.helpFrom = a.mode
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.search.Input.Blur()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.CycleEngine):
		a.cycleEngine()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		target, err := a.session.SearchURL(a.search.Input.Value())
		if errors.Is(err, engine.ErrEmptyQuery) {
			return a, nil
		}
		a.search.Input.Reset()
		a.search.Input.Blur()
		a.mode = ModeNormal
		return a, a.openCmd(target)
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	return a, cmd
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.filter.Reset()
		a.filter.Input.Blur()
		a.cursor = 0
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		a.filter.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	a.filter.Apply(a.session.Links(), a.filter.Input.Value())
	a.cursor = 0
	return a, cmd
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.NextField):
		a.form.Cycle(1)
		return a, textinput.Blink

	case key.Matches(msg, a.keys.PrevField):
		a.form.Cycle(-1)
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Confirm):
		a.submitForm()
		return a, nil
	}

	var cmd tea.Cmd
	a.form.Inputs[a.form.Focus], cmd = a.form.Inputs[a.form.Focus].Update(msg)
	return a, cmd
}

// submitForm validates the form and applies it. On a validation error the
// modal stays open and nothing is saved.
func (a *App) submitForm() {
	in := a.form.Input()

	if a.mode == ModeAdd {
		s, err := editor.NewShortcut(in)
		if err != nil {
			a.form.Err = err
			return
		}
		a.session.AddLink(s)
		a.filter.Reset()
		a.cursor = len(a.session.Links()) - 1
		a.mode = ModeNormal
		a.setMessage(MessageSuccess, "Added "+s.Title)
		return
	}

	orig := a.session.Link(a.form.EditID)
	if orig == nil {
		a.mode = ModeNormal
		return
	}
	s, err := editor.EditShortcut(*orig, in)
	if err != nil {
		a.form.Err = err
		return
	}
	a.session.UpdateLink(s)
	a.refilter()
	a.mode = ModeNormal
	a.setMessage(MessageSuccess, "Updated "+s.Title)
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Yes):
		if s := a.session.Link(a.deleteID); s != nil && a.session.RemoveLink(s.ID) {
			a.setMessage(MessageSuccess, "Deleted "+s.Title)
		}
		a.refilter()
		a.clampCursor()
		a.deleteID = ""
		a.mode = ModeNormal
	case key.Matches(msg, a.keys.No):
		a.deleteID = ""
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Cancel):
		a.mode = a.helpFrom
	}
	return a, nil
}

// move shifts the selected card by delta positions. Reordering is disabled
// while filtering since filtered positions are not grid positions.
func (a *App) move(delta int) {
	if a.filter.Active() {
		a.setMessage(MessageInfo, "Clear the filter to reorder")
		return
	}
	to := a.cursor + delta
	if err := a.session.ReorderLink(a.cursor, to); err != nil {
		return
	}
	a.cursor = to
}

func (a *App) cycleEngine() {
	cfg := a.session.CycleEngine()
	a.search.Input.Placeholder = cfg.Placeholder
}

// refilter re-runs an active filter against the current collection.
func (a *App) refilter() {
	if a.filter.Active() {
		a.filter.Apply(a.session.Links(), a.filter.Query)
	}
}

func (a *App) clampCursor() {
	total := len(a.Visible())
	if a.cursor >= total {
		a.cursor = total - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
