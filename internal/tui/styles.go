package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the dashboard.
type Styles struct {
	App          lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Title        lipgloss.Style
	Category     lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	URL          lipgloss.Style
	Count        lipgloss.Style
	Overlay      lipgloss.Style
	Pending      lipgloss.Style
	SortBar      lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Placeholder  lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	warn := lipgloss.AdaptiveColor{Light: "#8A5A44", Dark: "#B08060"}    // muted amber

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Tab: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Category: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Count: lipgloss.NewStyle().
			Foreground(subtle),

		Overlay: lipgloss.NewStyle().
			Foreground(accent),

		Pending: lipgloss.NewStyle().
			Foreground(subtle),

		SortBar: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),

		Status: lipgloss.NewStyle().
			Foreground(accent).
			PaddingLeft(1),

		Error: lipgloss.NewStyle().
			Foreground(warn),

		Placeholder: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
