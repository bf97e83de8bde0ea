package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used by the overlay.
const (
	ColorText = "252" // Light gray - for the typed text and border
)

// Styles contains the overlay's style definitions.
var Styles = struct {
	Overlay lipgloss.Style // Box contents
}{
	Overlay: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
}

// place offsets box so its top-left corner sits where a curses window of
// the same size would: (rows/2 - height/2, cols/2 - width/2).
func place(box string, termCols, termRows, width, height int) string {
	top := max(termRows/2-height/2, 0)
	left := max(termCols/2-width/2, 0)
	return lipgloss.NewStyle().
		MarginTop(top).
		MarginLeft(left).
		Render(box)
}
