package model

import "github.com/google/uuid"

// Shortcut is a single tile on the start page grid.
type Shortcut struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	IconURL string `json:"iconUrl,omitempty"` // empty = derive from domain at render time
}

// HasCustomIcon reports whether the shortcut carries its own icon URL.
func (s Shortcut) HasCustomIcon() bool {
	return s.IconURL != ""
}

// SeedShortcuts returns the grid shown when nothing has been persisted yet.
func SeedShortcuts() Collection {
	return Collection{
		{ID: "1", Title: "GitHub", URL: "https://github.com"},
		{ID: "2", Title: "ChatGPT", URL: "https://chat.openai.com"},
		{ID: "3", Title: "Gemini", URL: "https://gemini.google.com"},
		{ID: "4", Title: "DeepSeek", URL: "https://chat.deepseek.com"},
		{ID: "5", Title: "Bilibili", URL: "https://www.bilibili.com"},
		{ID: "6", Title: "SiliconFlow", URL: "https://siliconflow.cn"},
		{ID: "7", Title: "Chaoxing", URL: "https://i.chaoxing.com/"},
		{ID: "8", Title: "Superbed", URL: "https://www.superbed.cn/"},
	}
}

// GenerateID returns a fresh id for a user-created shortcut. Seed entries
// keep their short numeric ids.
func GenerateID() string {
	return uuid.NewString()
}
