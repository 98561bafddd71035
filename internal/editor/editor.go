// Package editor turns raw form input into well-formed shortcuts.
package editor

import (
	"errors"
	"regexp"
	"strings"

	"github.com/theysh/startpage/internal/model"
)

var (
	ErrEmptyTitle = errors.New("title is required")
	ErrEmptyURL   = errors.New("url is required")
)

var schemeRegex = regexp.MustCompile(`(?i)^https?://`)

// Input is the raw text of the add/edit form.
type Input struct {
	Title   string
	URL     string
	IconURL string // optional
}

// FromShortcut pre-fills an Input for editing s.
func FromShortcut(s model.Shortcut) Input {
	return Input{Title: s.Title, URL: s.URL, IconURL: s.IconURL}
}

// Validate reports the first missing required field.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(in.URL) == "" {
		return ErrEmptyURL
	}
	return nil
}

// NewShortcut builds a shortcut with a freshly generated ID.
func NewShortcut(in Input) (model.Shortcut, error) {
	return build(model.GenerateID(), in)
}

// EditShortcut builds the replacement for orig, keeping its ID.
func EditShortcut(orig model.Shortcut, in Input) (model.Shortcut, error) {
	return build(orig.ID, in)
}

func build(id string, in Input) (model.Shortcut, error) {
	if err := in.Validate(); err != nil {
		return model.Shortcut{}, err
	}
	return model.Shortcut{
		ID:      id,
		Title:   strings.TrimSpace(in.Title),
		URL:     NormalizeURL(in.URL),
		IconURL: strings.TrimSpace(in.IconURL),
	}, nil
}

// NormalizeURL prepends https:// unless the URL already starts with
// http:// or https:// (case-insensitive). Nothing else is checked.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || schemeRegex.MatchString(raw) {
		return raw
	}
	return "https://" + raw
}
