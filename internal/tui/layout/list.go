package layout

// CalculateListHeight computes the visible row count for the link list.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateVisibleRows computes the start and end indices for a scrollable
// list. Returns (start, end) where rows[start:end] should be displayed,
// keeping the selected row roughly centered.
func CalculateVisibleRows(selected, total, viewportHeight int) (start, end int) {
	if total <= viewportHeight {
		return 0, total
	}

	start = selected - viewportHeight/2
	if start < 0 {
		start = 0
	}

	maxStart := total - viewportHeight
	if start > maxStart {
		start = maxStart
	}

	return start, start + viewportHeight
}

// CalculateModalWidth computes responsive modal width based on percentage
// of terminal width, clamped between MinWidth and MaxWidth.
func CalculateModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.WidthPercent / 100

	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}
