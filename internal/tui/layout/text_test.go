package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
		{"multiple codes", "\x1b[1m\x1b[31mred bold\x1b[0m", "red bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI bold", "\x1b[1mhello\x1b[0m", 5},
		{"wide runes take two cells", "こんにちは", 10},
		{"mixed ANSI and wide runes", "\x1b[1mこんにちは\x1b[0m", 10},
		{"accented", "café", 4},
		{"empty", "", 0},
		{"only ANSI", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 2", "hello", 2, "..", true},
		{"max is 1", "hello", 1, ".", true},
		{"max is 0", "hello", 0, "", true},
		{"empty string", "", 10, "", false},
		{"wide text", "こんにちは", 7, "こん...", true},
		{"wide rune straddling the limit", "こんにちは", 6, "こ...", true},
		{"wide no truncation", "こんにちは", 10, "こんにちは", false},
		{"wide over by one cell", "こんにちは", 9, "こんに...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestCenterText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"even padding", "ab", 6, "  ab  "},
		{"odd padding goes right", "ab", 5, " ab  "},
		{"exact fit", "abcd", 4, "abcd"},
		{"truncated", "GitHub Enterprise", 10, "GitHub ..."},
		{"wide runes fill two cells", "百度", 6, " 百度 "},
		{"wide exact fit", "百度", 4, "百度"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CenterText(tt.text, tt.width, cfg)
			if got != tt.want {
				t.Errorf("CenterText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestCenterText_WideTitlesFillCardWidth(t *testing.T) {
	cfg := DefaultConfig().Text

	for _, title := range []string{
		"百度一下",
		"哔哩哔哩弹幕视频网站首页",
		"超星学习通",
		"GitHub",
		"\x1b[1mSiliconFlow\x1b[0m",
	} {
		for _, width := range []int{4, 13, 14, 16} {
			got := CenterText(title, width, cfg)
			if w := VisibleLength(got); w != width {
				t.Errorf("CenterText(%q, %d) is %d cells wide: %q", title, width, w, got)
			}
		}
	}
}

func TestCenterText_WideTitle(t *testing.T) {
	cfg := DefaultConfig().Text

	if got, want := CenterText("百度一下", 14, cfg), "   百度一下   "; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := CenterText("哔哩哔哩弹幕视频网站首页", 14, cfg), "哔哩哔哩弹... "; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
