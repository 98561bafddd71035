package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/theysh/startpage/internal/editor"
	"github.com/theysh/startpage/internal/model"
	"github.com/theysh/startpage/internal/search"
	"github.com/theysh/startpage/internal/tui/layout"
)

// Mode is the current interaction mode of the start page.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeFilter
	ModeAdd
	ModeEdit
	ModeConfirmDelete
	ModeHelp
)

// MessageType controls how the status line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// SearchState holds the web search bar.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a SearchState with the given engine placeholder.
func NewSearchState(cfg layout.LayoutConfig, placeholder string) SearchState {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	input.Prompt = ""
	return SearchState{Input: input}
}

// FilterState narrows the grid to shortcuts whose titles fuzzy-match Query.
type FilterState struct {
	Input   textinput.Model
	Query   string // active query, persists after the input closes
	Results []search.SearchResult
}

// NewFilterState creates an empty FilterState.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	input := textinput.New()
	input.Placeholder = "Filter..."
	input.CharLimit = cfg.Input.TitleCharLimit
	input.Width = cfg.Input.StandardWidth
	input.Prompt = "/"
	return FilterState{Input: input}
}

// Active reports whether the grid is currently narrowed.
func (f *FilterState) Active() bool {
	return f.Query != ""
}

// Apply recomputes the results for query against links.
func (f *FilterState) Apply(links model.Collection, query string) {
	f.Query = query
	f.Results = search.FuzzySearchShortcuts(links, query)
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Query = ""
	f.Results = nil
}

// Form field indexes.
const (
	fieldTitle = iota
	fieldURL
	fieldIcon
	fieldCount
)

// FormState holds the add/edit modal.
type FormState struct {
	Inputs [fieldCount]textinput.Model
	Focus  int
	EditID string // empty when adding
	Err    error  // last validation error
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	var f FormState

	title := textinput.New()
	title.Placeholder = "e.g. GitHub"
	title.CharLimit = cfg.Input.TitleCharLimit
	title.Width = cfg.Input.StandardWidth
	f.Inputs[fieldTitle] = title

	url := textinput.New()
	url.Placeholder = "e.g. github.com"
	url.CharLimit = cfg.Input.URLCharLimit
	url.Width = cfg.Input.StandardWidth
	f.Inputs[fieldURL] = url

	icon := textinput.New()
	icon.Placeholder = "https://... (optional)"
	icon.CharLimit = cfg.Input.URLCharLimit
	icon.Width = cfg.Input.StandardWidth
	f.Inputs[fieldIcon] = icon

	return f
}

// Open prepares the form for a new session. A nil shortcut means add.
func (f *FormState) Open(s *model.Shortcut) {
	for i := range f.Inputs {
		f.Inputs[i].Reset()
	}
	f.EditID = ""
	f.Err = nil
	if s != nil {
		f.EditID = s.ID
		f.Inputs[fieldTitle].SetValue(s.Title)
		f.Inputs[fieldURL].SetValue(s.URL)
		f.Inputs[fieldIcon].SetValue(s.IconURL)
	}
	f.focus(fieldTitle)
}

// Input returns the current field values.
func (f *FormState) Input() editor.Input {
	return editor.Input{
		Title:   f.Inputs[fieldTitle].Value(),
		URL:     f.Inputs[fieldURL].Value(),
		IconURL: f.Inputs[fieldIcon].Value(),
	}
}

// Cycle moves focus by delta, wrapping around.
func (f *FormState) Cycle(delta int) {
	f.focus(((f.Focus+delta)%fieldCount + fieldCount) % fieldCount)
}

func (f *FormState) focus(idx int) {
	for i := range f.Inputs {
		f.Inputs[i].Blur()
	}
	f.Focus = idx
	f.Inputs[idx].Focus()
}
