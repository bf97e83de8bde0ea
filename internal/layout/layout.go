// Package layout wraps and centers the input buffer inside the overlay.
//
// Layout is a pure function of the text and the window geometry. Callers
// clear the surface, draw the border and then place each Line at (X, Y).
package layout

import "strings"

// Geometry is the overlay size and the columns reserved on each side of the
// text before wrapping.
type Geometry struct {
	Width   int
	Height  int
	Padding int
}

// MaxWidth is the widest a display line may be before it is wrapped.
func (g Geometry) MaxWidth() int {
	return g.Width - 2*g.Padding
}

// Line is one display line and its window-relative position.
type Line struct {
	Text string
	X    int // column
	Y    int // row
}

// Layout splits text into display lines and centers them in geo.
//
// Logical lines (split on '\n', empty ones kept) longer than MaxWidth are
// cut into MaxWidth-rune chunks with no regard for word boundaries. When
// MaxWidth is not positive, lines are left unwrapped. An empty text yields
// no lines.
func Layout(text string, geo Geometry) []Line {
	if text == "" {
		return nil
	}
	var rows [][]rune
	for _, logical := range strings.Split(text, "\n") {
		rows = append(rows, wrap([]rune(logical), geo.MaxWidth())...)
	}

	n := len(rows)
	lines := make([]Line, n)
	for row, r := range rows {
		lines[row] = Line{
			Text: string(r),
			X:    geo.Width/2 - len(r)/2,
			Y:    geo.Height/2 - (n/2 - row),
		}
	}
	return lines
}

func wrap(line []rune, max int) [][]rune {
	if max <= 0 || len(line) <= max {
		return [][]rune{line}
	}
	chunks := make([][]rune, 0, (len(line)+max-1)/max)
	for start := 0; start < len(line); start += max {
		end := min(start+max, len(line))
		chunks = append(chunks, line[start:end])
	}
	return chunks
}
