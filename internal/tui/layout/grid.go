package layout

// Direction is a cursor movement on the grid.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// CalculateColumns returns how many cards fit side by side, clamped to
// [MinColumns, MaxColumns].
func CalculateColumns(terminalWidth int, cfg GridConfig) int {
	usable := terminalWidth - cfg.HorizontalPadding
	cols := (usable + cfg.Gap) / (cfg.CardWidth + cfg.Gap)
	if cols < cfg.MinColumns {
		cols = cfg.MinColumns
	}
	if cfg.MaxColumns > 0 && cols > cfg.MaxColumns {
		cols = cfg.MaxColumns
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// CalculateVisibleRows returns how many card rows fit below the header.
// Always at least 1.
func CalculateVisibleRows(terminalHeight int, cfg GridConfig) int {
	rows := (terminalHeight - cfg.HeightReduction) / cfg.CardHeight
	if rows < 1 {
		return 1
	}
	return rows
}

// RowCount returns the number of rows needed for total cards.
func RowCount(total, cols int) int {
	if total <= 0 || cols <= 0 {
		return 0
	}
	return (total + cols - 1) / cols
}

// MoveCursor moves a row-major grid cursor one step in dir.
// Up/down keep the column and stop at the edges; moving down onto a short
// last row lands on its final card. Left/right walk the flat order and stop
// at the ends.
func MoveCursor(cursor, total, cols int, dir Direction) int {
	if total <= 0 {
		return 0
	}
	if cols < 1 {
		cols = 1
	}

	switch dir {
	case DirLeft:
		if cursor > 0 {
			cursor--
		}
	case DirRight:
		if cursor < total-1 {
			cursor++
		}
	case DirUp:
		if cursor-cols >= 0 {
			cursor -= cols
		}
	case DirDown:
		next := cursor + cols
		switch {
		case next < total:
			cursor = next
		case cursor/cols < RowCount(total, cols)-1:
			cursor = total - 1
		}
	}
	return cursor
}

// CalculateRowOffset returns the first visible row so that selectedRow stays
// roughly centered within visibleRows.
func CalculateRowOffset(selectedRow, totalRows, visibleRows int) int {
	if totalRows <= visibleRows {
		return 0
	}

	offset := selectedRow - visibleRows/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := totalRows - visibleRows
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
