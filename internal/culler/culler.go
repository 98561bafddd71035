// Package culler finds shortcuts whose targets have gone away.
package culler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/theysh/startpage/internal/model"
)

// Status is the health of one shortcut URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx
	Dead                      // 404 or 410
	Unreachable               // network failure, 5xx, auth walls
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "ok"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for one shortcut.
type Result struct {
	Shortcut   model.Shortcut
	Index      int // grid position
	Status     Status
	StatusCode int    // 0 if the request never completed
	Reason     string // short explanation for non-healthy results
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Options configures a check run.
type Options struct {
	Concurrency    int
	Timeout        time.Duration
	ExcludeDomains []string // 404s on these hosts are reported as possibly private
	Client         *http.Client
	OnProgress     ProgressFunc
}

const maxRedirects = 10

// Check probes every shortcut URL with a bounded pool of workers and returns
// one result per shortcut, in grid order.
func Check(ctx context.Context, links model.Collection, opts Options) []Result {
	if len(links) == 0 {
		return nil
	}

	workers := opts.Concurrency
	if workers <= 0 {
		workers = 1
	}
	if workers > len(links) {
		workers = len(links)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	exclude := make(map[string]bool, len(opts.ExcludeDomains))
	for _, d := range opts.ExcludeDomains {
		exclude[strings.ToLower(d)] = true
	}

	results := make([]Result, len(links))
	jobs := make(chan int)
	var wg sync.WaitGroup

	var mu sync.Mutex
	completed := 0

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = probe(ctx, client, links[idx], exclude)
				results[idx].Index = idx

				if opts.OnProgress != nil {
					mu.Lock()
					completed++
					opts.OnProgress(completed, len(links))
					mu.Unlock()
				}
			}
		}()
	}

	for i := range links {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// Unhealthy filters results down to dead and unreachable entries.
func Unhealthy(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Status != Healthy {
			out = append(out, r)
		}
	}
	return out
}

func probe(ctx context.Context, client *http.Client, s model.Shortcut, exclude map[string]bool) Result {
	result := Result{Shortcut: s}

	// HEAD first; some servers reject it, so retry with GET.
	resp, err := do(ctx, client, http.MethodHead, s.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = do(ctx, client, http.MethodGet, s.URL)
		if err != nil {
			result.Status = Unreachable
			result.Reason = normalizeError(err)
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(s.URL, exclude) {
			result.Status = Unreachable
			result.Reason = "possibly private"
		} else {
			result.Status = Dead
		}
	default:
		result.Status = Unreachable
		result.Reason = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain matches the URL host or any parent domain against exclude.
func isExcludedDomain(rawURL string, exclude map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range exclude {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func normalizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	lower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "timeout"):
		return "timeout"
	case strings.Contains(lower, "connection refused"):
		return "connection refused"
	case strings.Contains(lower, "certificate"), strings.Contains(lower, "tls:"):
		return "TLS error"
	case strings.Contains(lower, "unsupported protocol scheme"):
		return "unsupported scheme"
	default:
		return err.Error()
	}
}
