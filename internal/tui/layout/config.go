package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Grid  GridConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// GridConfig holds shortcut grid dimensions.
type GridConfig struct {
	// CardWidth is the outer width of one card including its border.
	CardWidth int

	// CardHeight is the outer height of one card including its border.
	CardHeight int

	// Gap is the number of blank columns between cards.
	Gap int

	// MinColumns and MaxColumns bound the responsive column count.
	MinColumns int
	MaxColumns int

	// HorizontalPadding is subtracted from terminal width before fitting cards.
	HorizontalPadding int

	// HeightReduction is subtracted from terminal height for the grid area.
	// Accounts for: app padding (1) + clock (2) + gap (1) + search box (3) + gap (1) + help bar (2) = 10
	HeightReduction int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	TitleCharLimit  int
	URLCharLimit    int
	SearchCharLimit int

	// Display widths
	StandardWidth int // title, URL, icon inputs
	SearchWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			CardWidth:         18,
			CardHeight:        4,
			Gap:               1,
			MinColumns:        2,
			MaxColumns:        5,
			HorizontalPadding: 4,
			HeightReduction:   10,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             50,
			MaxWidth:             80,
			HelpLeftColumnWidth:  20,
			HelpRightColumnWidth: 22,
		},
		Input: InputConfig{
			TitleCharLimit:  100,
			URLCharLimit:    500,
			SearchCharLimit: 200,
			StandardWidth:   40,
			SearchWidth:     50,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
