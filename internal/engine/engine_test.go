package engine_test

import (
	"errors"
	"testing"

	"github.com/theysh/startpage/internal/engine"
)

func TestRegistry(t *testing.T) {
	ids := engine.IDs()
	want := []engine.ID{engine.Google, engine.Baidu, engine.Bing}
	if len(ids) != len(want) {
		t.Fatalf("expected %d engines, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], ids[i])
		}
	}

	for _, cfg := range engine.All() {
		if cfg.Name == "" || cfg.URL == "" || cfg.QueryParam == "" || cfg.Placeholder == "" {
			t.Errorf("incomplete config for %q: %+v", cfg.ID, cfg)
		}
	}

	baidu, ok := engine.Lookup(engine.Baidu)
	if !ok || baidu.QueryParam != "wd" || baidu.URL != "https://www.baidu.com/s" {
		t.Errorf("unexpected baidu config: %+v", baidu)
	}
	if _, ok := engine.Lookup("yahoo"); ok {
		t.Error("yahoo should not be registered")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		raw  string
		want engine.ID
	}{
		{"google", engine.Google},
		{"baidu", engine.Baidu},
		{"bing", engine.Bing},
		{"", engine.Google},
		{"duckduckgo", engine.Google},
		{"Baidu", engine.Google}, // identifiers are case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := engine.Resolve(tt.raw).ID; got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNext(t *testing.T) {
	if got := engine.Next(engine.Google); got != engine.Baidu {
		t.Errorf("expected baidu after google, got %q", got)
	}
	if got := engine.Next(engine.Bing); got != engine.Google {
		t.Errorf("expected wrap to google, got %q", got)
	}
	if got := engine.Next("unknown"); got != engine.Default {
		t.Errorf("expected default for unknown, got %q", got)
	}
}

func TestSearchURL(t *testing.T) {
	google, _ := engine.Lookup(engine.Google)
	baidu, _ := engine.Lookup(engine.Baidu)
	bing, _ := engine.Lookup(engine.Bing)

	tests := []struct {
		name   string
		engine engine.Config
		query  string
		want   string
	}{
		{"google cats", google, "cats", "https://www.google.com/search?q=cats"},
		{"baidu param", baidu, "cats", "https://www.baidu.com/s?wd=cats"},
		{"space as %20", bing, "go modules", "https://www.bing.com/search?q=go%20modules"},
		{"reserved chars", google, "a&b=c+d", "https://www.google.com/search?q=a%26b%3Dc%2Bd"},
		{"unicode", baidu, "猫", "https://www.baidu.com/s?wd=%E7%8C%AB"},
		{"unreserved marks stay literal", google, "what's up!", "https://www.google.com/search?q=what's%20up!"},
		{"parens and star", bing, "(a*b)", "https://www.bing.com/search?q=(a*b)"},
		{"literal percent", google, "100%", "https://www.google.com/search?q=100%25"},
		{"query kept verbatim", google, " cats ", "https://www.google.com/search?q=%20cats%20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.engine.SearchURL(tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchURL_EmptyQuery(t *testing.T) {
	google, _ := engine.Lookup(engine.Google)
	for _, q := range []string{"", "   ", "\t\n"} {
		if _, err := google.SearchURL(q); !errors.Is(err, engine.ErrEmptyQuery) {
			t.Errorf("SearchURL(%q): expected ErrEmptyQuery, got %v", q, err)
		}
	}
}
