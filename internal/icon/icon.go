// Package icon picks the image shown on a shortcut card.
//
// Candidates are tried in order: the shortcut's own icon URL, the favicon
// service for the shortcut's host, and finally a locally drawn placeholder.
package icon

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/theysh/startpage/internal/model"
)

// DefaultFaviconService is used when no service template is configured.
const DefaultFaviconService = "https://www.google.com/s2/favicons?domain=%s&sz=128"

// Kind identifies which candidate won.
type Kind int

const (
	Custom Kind = iota
	Favicon
	Placeholder
)

func (k Kind) String() string {
	switch k {
	case Custom:
		return "custom"
	case Favicon:
		return "favicon"
	default:
		return "placeholder"
	}
}

// Source is a resolved icon. URL is empty for placeholders.
type Source struct {
	Kind Kind
	URL  string
}

// Candidate is one icon URL to try.
type Candidate struct {
	Kind Kind
	URL  string
}

// Candidates lists the remote icon URLs for s in the order they should be
// tried. The placeholder is implied after the last candidate.
func Candidates(s model.Shortcut, faviconService string) []Candidate {
	var out []Candidate
	if s.HasCustomIcon() {
		out = append(out, Candidate{Kind: Custom, URL: s.IconURL})
	}
	if u := FaviconURL(s.URL, faviconService); u != "" {
		out = append(out, Candidate{Kind: Favicon, URL: u})
	}
	return out
}

// FaviconURL fills the service template with the host of rawURL.
// Returns "" when rawURL has no host.
func FaviconURL(rawURL, service string) string {
	if service == "" {
		service = DefaultFaviconService
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf(service, url.QueryEscape(parsed.Hostname()))
}

// Letter is the glyph drawn on placeholder icons.
func Letter(title string) string {
	title = strings.TrimSpace(title)
	r, _ := utf8.DecodeRuneInString(title)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// PlaceholderSVG draws a rounded square with the first letter of title.
func PlaceholderSVG(title string) []byte {
	return []byte(fmt.Sprintf(placeholderTemplate, html.EscapeString(Letter(title))))
}

const placeholderTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128">` +
	`<rect width="128" height="128" rx="28" fill="#ffffff" fill-opacity="0.1"/>` +
	`<text x="64" y="84" font-family="sans-serif" font-size="64" text-anchor="middle" fill="#ffffff" fill-opacity="0.6">%s</text>` +
	`</svg>`

// ResolverParams holds parameters for creating a Resolver.
type ResolverParams struct {
	FaviconService string
	Client         *http.Client
	Timeout        time.Duration // per probe; ignored when Client is set
}

// Resolver probes icon candidates and remembers the outcome per shortcut.
type Resolver struct {
	service string
	client  *http.Client

	mu    sync.Mutex
	cache map[string]Source
}

// NewResolver creates a Resolver.
func NewResolver(params ResolverParams) *Resolver {
	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Resolver{
		service: params.FaviconService,
		client:  client,
		cache:   make(map[string]Source),
	}
}

// Resolve returns the first candidate that answers with an image, or the
// placeholder. Results are cached until the shortcut's URL or icon changes.
func (r *Resolver) Resolve(ctx context.Context, s model.Shortcut) Source {
	key := cacheKey(s)

	r.mu.Lock()
	src, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return src
	}

	src = Source{Kind: Placeholder}
	for _, c := range Candidates(s, r.service) {
		if r.probe(ctx, c.URL) {
			src = Source{Kind: c.Kind, URL: c.URL}
			break
		}
	}

	// Cancelled lookups say nothing about the icon.
	if ctx.Err() == nil {
		r.mu.Lock()
		r.cache[key] = src
		r.mu.Unlock()
	}
	return src
}

// Forget drops cached results for the shortcut id.
func (r *Resolver) Forget(id string) {
	prefix := id + "\x00"
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.cache {
		if strings.HasPrefix(k, prefix) {
			delete(r.cache, k)
		}
	}
}

func cacheKey(s model.Shortcut) string {
	return s.ID + "\x00" + s.URL + "\x00" + s.IconURL
}

// probe reports whether rawURL serves an image. HEAD first, GET when the
// server refuses HEAD.
func (r *Resolver) probe(ctx context.Context, rawURL string) bool {
	resp, err := r.request(ctx, http.MethodHead, rawURL)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		resp.Body.Close()
		resp, err = r.request(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}
	ct := resp.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "application/octet-stream")
}

func (r *Resolver) request(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return r.client.Do(req)
}
