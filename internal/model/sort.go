package model

// SortMode selects how the link list is presented.
type SortMode string

const (
	// SortGrouping renders links grouped by category, with a synthetic
	// "Recent" group for ad-hoc destinations.
	SortGrouping SortMode = "grouping"
	// SortFrequency renders one flat list ordered by click count.
	SortFrequency SortMode = "frequency"
)

// DefaultSortMode is used when nothing is persisted yet.
const DefaultSortMode = SortFrequency

// ParseSortMode maps a persisted string to a SortMode, falling back to the
// default for anything unrecognized.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortGrouping, SortFrequency:
		return SortMode(s)
	default:
		return DefaultSortMode
	}
}

// Toggle returns the other sort mode.
func (m SortMode) Toggle() SortMode {
	if m == SortGrouping {
		return SortFrequency
	}
	return SortGrouping
}

// Label returns a short human-readable name for the mode.
func (m SortMode) Label() string {
	if m == SortGrouping {
		return "Grouping"
	}
	return "Frequency"
}
