package importer

import (
	"io"
	"strings"

	"github.com/theysh/startpage/internal/editor"
	"github.com/theysh/startpage/internal/model"
	"golang.org/x/net/html"
)

// skippedSchemes are bookmark URLs that make no sense as a start page tile.
var skippedSchemes = []string{"javascript:", "place:", "data:", "about:", "chrome:"}

// ParseHTMLBookmarks parses Netscape bookmark HTML into shortcuts in document
// order. Folder structure is flattened; the grid has no folders.
func ParseHTMLBookmarks(r io.Reader) ([]model.Shortcut, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var shortcuts []model.Shortcut

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			href := strings.TrimSpace(getAttr(n, "href"))
			if href == "" || hasSkippedScheme(href) {
				return
			}

			title := getTextContent(n)
			if title == "" {
				title = href // fallback to URL as title
			}

			s, err := editor.NewShortcut(editor.Input{
				Title:   title,
				URL:     href,
				IconURL: iconURI(n),
			})
			if err == nil {
				shortcuts = append(shortcuts, s)
			}
			return // Don't recurse into A
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return shortcuts, nil
}

// iconURI returns the ICON_URI attribute when it is a fetchable URL.
// Inline ICON data URIs are dropped.
func iconURI(n *html.Node) string {
	uri := strings.TrimSpace(getAttr(n, "icon_uri"))
	lower := strings.ToLower(uri)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return uri
	}
	return ""
}

func hasSkippedScheme(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
