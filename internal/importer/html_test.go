package importer_test

import (
	"strings"
	"testing"

	"github.com/theysh/startpage/internal/importer"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	shortcuts, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(shortcuts) != 1 {
		t.Fatalf("expected 1 shortcut, got %d", len(shortcuts))
	}

	s := shortcuts[0]
	if s.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", s.Title)
	}
	if s.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", s.URL)
	}
	if s.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestParseHTML_FlattensFoldersInOrder(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com">Google</A>
</DL><p>`

	shortcuts, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"React Docs", "GitHub", "Google"}
	if len(shortcuts) != len(want) {
		t.Fatalf("expected %d shortcuts, got %d", len(want), len(shortcuts))
	}
	for i, title := range want {
		if shortcuts[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, shortcuts[i].Title)
		}
	}
}

func TestParseHTML_NormalizesAndSkips(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="example.org">No Scheme</A>
    <DT><A HREF="HTTP://UPPER.example">Upper</A>
    <DT><A HREF="javascript:alert(1)">Bookmarklet</A>
    <DT><A HREF="place:sort=8">Smart Folder</A>
    <DT><A HREF="">Empty</A>
    <DT><A>No Href</A>
    <DT><A HREF="https://untitled.example"></A>
</DL>`

	shortcuts, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(shortcuts) != 3 {
		t.Fatalf("expected 3 shortcuts, got %d: %+v", len(shortcuts), shortcuts)
	}
	if shortcuts[0].URL != "https://example.org" {
		t.Errorf("expected normalized URL, got %q", shortcuts[0].URL)
	}
	if shortcuts[1].URL != "HTTP://UPPER.example" {
		t.Errorf("expected URL kept as-is, got %q", shortcuts[1].URL)
	}
	if shortcuts[2].Title != "https://untitled.example" {
		t.Errorf("expected URL as fallback title, got %q", shortcuts[2].Title)
	}
}

func TestParseHTML_IconURI(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="https://a.example" ICON_URI="https://a.example/favicon.ico">A</A>
    <DT><A HREF="https://b.example" ICON="data:image/png;base64,AAAA" ICON_URI="fake-favicon-uri:https://b.example">B</A>
</DL>`

	shortcuts, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shortcuts) != 2 {
		t.Fatalf("expected 2 shortcuts, got %d", len(shortcuts))
	}
	if shortcuts[0].IconURL != "https://a.example/favicon.ico" {
		t.Errorf("expected icon URI, got %q", shortcuts[0].IconURL)
	}
	if shortcuts[1].IconURL != "" {
		t.Errorf("expected no icon for non-http icon URI, got %q", shortcuts[1].IconURL)
	}
}

func TestParseHTML_Empty(t *testing.T) {
	shortcuts, err := importer.ParseHTMLBookmarks(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shortcuts) != 0 {
		t.Errorf("expected no shortcuts, got %d", len(shortcuts))
	}
}
