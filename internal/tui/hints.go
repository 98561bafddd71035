package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "h/l", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint
	Edit   []Hint
	Action []Hint
	System []Hint
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// contextualHints returns the hints for the current mode.
func (a App) contextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		set := HintSet{
			Nav: []Hint{
				{Key: "hjkl", Desc: "move"},
				{Key: "Enter", Desc: "open"},
			},
			Action: []Hint{
				{Key: "s", Desc: "search"},
				{Key: "Tab", Desc: "engine"},
				{Key: "/", Desc: "filter"},
			},
			Edit: []Hint{
				{Key: "a", Desc: "add"},
				{Key: "e", Desc: "edit"},
				{Key: "d", Desc: "del"},
				{Key: "H/L", Desc: "reorder"},
			},
			System: []Hint{
				{Key: "?", Desc: "help"},
				{Key: "q", Desc: "quit"},
			},
		}
		if a.filter.Active() {
			set.System = append([]Hint{{Key: "Esc", Desc: "clear filter"}}, set.System...)
		}
		return set
	case ModeSearch:
		return HintSet{
			Action: []Hint{
				{Key: "Enter", Desc: "search"},
				{Key: "Tab", Desc: "engine"},
			},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeFilter:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "filter"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	default:
		// Modals render their own hints.
		return HintSet{}
	}
}
