package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theysh/startpage/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/startpage-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("startpage-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the shortcuts to Netscape bookmark HTML format, in grid
// order, as a single flat list.
func ExportHTML(links model.Collection) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, s := range links {
		writeShortcut(&b, s)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeShortcut(b *strings.Builder, s model.Shortcut) {
	b.WriteString("    <DT><A HREF=\"")
	b.WriteString(html.EscapeString(s.URL))
	b.WriteString("\"")
	if s.HasCustomIcon() {
		fmt.Fprintf(b, " ICON_URI=\"%s\"", html.EscapeString(s.IconURL))
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(s.Title))
}
