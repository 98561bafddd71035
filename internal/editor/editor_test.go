package editor_test

import (
	"errors"
	"testing"

	"github.com/theysh/startpage/internal/editor"
	"github.com/theysh/startpage/internal/model"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
		{"Http://mixed.case", "Http://mixed.case"},
		{"  test.dev  ", "https://test.dev"},
		{"ftp://files.example.com", "https://ftp://files.example.com"},
		{"httpbin.org", "https://httpbin.org"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := editor.NormalizeURL(tt.in); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewShortcut(t *testing.T) {
	s, err := editor.NewShortcut(editor.Input{Title: "Test", URL: "test.dev"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID == "" {
		t.Error("expected a generated id")
	}
	if s.Title != "Test" || s.URL != "https://test.dev" {
		t.Errorf("unexpected shortcut: %+v", s)
	}
	if s.HasCustomIcon() {
		t.Error("expected no icon")
	}

	other, _ := editor.NewShortcut(editor.Input{Title: "Test", URL: "test.dev"})
	if other.ID == s.ID {
		t.Error("ids should be unique")
	}
}

func TestNewShortcut_IconURL(t *testing.T) {
	tests := []struct {
		name string
		icon string
		want string
	}{
		{"absent", "", ""},
		{"blank", "   ", ""},
		{"trimmed", "  https://x.dev/icon.png ", "https://x.dev/icon.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := editor.NewShortcut(editor.Input{Title: "X", URL: "x.dev", IconURL: tt.icon})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.IconURL != tt.want {
				t.Errorf("IconURL = %q, want %q", s.IconURL, tt.want)
			}
		})
	}
}

func TestNewShortcut_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   editor.Input
		want error
	}{
		{"empty title", editor.Input{Title: "", URL: "x.dev"}, editor.ErrEmptyTitle},
		{"blank title", editor.Input{Title: "  ", URL: "x.dev"}, editor.ErrEmptyTitle},
		{"empty url", editor.Input{Title: "X", URL: ""}, editor.ErrEmptyURL},
		{"blank url", editor.Input{Title: "X", URL: " \t"}, editor.ErrEmptyURL},
		{"both empty", editor.Input{}, editor.ErrEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := editor.NewShortcut(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if s != (model.Shortcut{}) {
				t.Errorf("no shortcut should be produced, got %+v", s)
			}
		})
	}
}

func TestEditShortcut_KeepsID(t *testing.T) {
	orig := model.Shortcut{ID: "42", Title: "Old", URL: "https://old.dev", IconURL: "https://old.dev/i.png"}

	in := editor.FromShortcut(orig)
	if in.Title != "Old" || in.URL != "https://old.dev" || in.IconURL != "https://old.dev/i.png" {
		t.Fatalf("FromShortcut did not pre-fill: %+v", in)
	}

	in.Title = "New"
	in.URL = "new.dev"
	in.IconURL = ""

	s, err := editor.EditShortcut(orig, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "42" {
		t.Errorf("id should be preserved, got %q", s.ID)
	}
	if s.Title != "New" || s.URL != "https://new.dev" || s.IconURL != "" {
		t.Errorf("unexpected shortcut: %+v", s)
	}
}
