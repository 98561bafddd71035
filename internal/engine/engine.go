// Package engine holds the static registry of web search engines.
package engine

import (
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyQuery is returned by SearchURL for a blank query.
var ErrEmptyQuery = errors.New("empty search query")

// ID identifies a search engine. It is the value persisted as the selection.
type ID string

const (
	Google ID = "google"
	Baidu  ID = "baidu"
	Bing   ID = "bing"
)

// Default is used when no valid selection has been persisted.
const Default = Google

// Config describes how to send a query to one engine.
type Config struct {
	ID          ID
	Name        string
	URL         string // search endpoint without query string
	QueryParam  string
	Placeholder string
}

// order is the display order of the registry.
var order = []ID{Google, Baidu, Bing}

var registry = map[ID]Config{
	Google: {
		ID:          Google,
		Name:        "Google",
		URL:         "https://www.google.com/search",
		QueryParam:  "q",
		Placeholder: "Search Google...",
	},
	Baidu: {
		ID:          Baidu,
		Name:        "Baidu",
		URL:         "https://www.baidu.com/s",
		QueryParam:  "wd",
		Placeholder: "百度一下，你就知道",
	},
	Bing: {
		ID:          Bing,
		Name:        "Bing",
		URL:         "https://www.bing.com/search",
		QueryParam:  "q",
		Placeholder: "Search Bing...",
	},
}

// IDs returns all engine identifiers in display order.
func IDs() []ID {
	out := make([]ID, len(order))
	copy(out, order)
	return out
}

// All returns every engine config in display order.
func All() []Config {
	out := make([]Config, len(order))
	for i, id := range order {
		out[i] = registry[id]
	}
	return out
}

// Lookup returns the config for id.
func Lookup(id ID) (Config, bool) {
	cfg, ok := registry[id]
	return cfg, ok
}

// Resolve returns the config for a raw identifier, falling back to Default
// when it is empty or unrecognized.
func Resolve(raw string) Config {
	if cfg, ok := registry[ID(raw)]; ok {
		return cfg
	}
	return registry[Default]
}

// Next returns the engine after id in display order, wrapping around.
func Next(id ID) ID {
	for i, candidate := range order {
		if candidate == id {
			return order[(i+1)%len(order)]
		}
	}
	return Default
}

// SearchURL builds the navigation target for query:
// <URL>?<QueryParam>=<escaped query>.
func (c Config) SearchURL(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}
	return c.URL + "?" + c.QueryParam + "=" + EscapeQuery(query), nil
}

// EscapeQuery percent-encodes a query value the way browsers'
// encodeURIComponent does: spaces become %20 rather than + and the marks
// ! ' ( ) * stay literal.
func EscapeQuery(s string) string {
	return queryUnescaper.Replace(url.QueryEscape(s))
}

// QueryEscape turns a literal "+" into %2B, so any "+" left is a space.
var queryUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
