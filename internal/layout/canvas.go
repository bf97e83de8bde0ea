package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// BoxBorder mirrors a curses box drawn with '|' and '-'.
var BoxBorder = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

// wide marks the second cell of a double-width rune.
const wide rune = -1

// Canvas is a fixed grid of character cells, Width columns by Height rows.
// Text drawn outside the grid is clipped.
type Canvas struct {
	width, height int
	cells         [][]rune
}

// NewCanvas returns a blank canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{width: width, height: height, cells: make([][]rune, height)}
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", width))
	}
	return c
}

// Box draws b around the edge of the canvas. Canvases smaller than 2x2 are
// left untouched.
func (c *Canvas) Box(b lipgloss.Border) {
	if c.width < 2 || c.height < 2 {
		return
	}
	last := c.height - 1
	for x := 1; x < c.width-1; x++ {
		c.set(x, 0, firstRune(b.Top))
		c.set(x, last, firstRune(b.Bottom))
	}
	for y := 1; y < last; y++ {
		c.set(0, y, firstRune(b.Left))
		c.set(c.width-1, y, firstRune(b.Right))
	}
	c.set(0, 0, firstRune(b.TopLeft))
	c.set(c.width-1, 0, firstRune(b.TopRight))
	c.set(0, last, firstRune(b.BottomLeft))
	c.set(c.width-1, last, firstRune(b.BottomRight))
}

// Draw writes text starting at column x of row y, overwriting what is there.
func (c *Canvas) Draw(x, y int, text string) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.width {
			return
		}
		if x >= 0 {
			c.set(x, y, r)
			if w == 2 {
				c.set(x+1, y, wide)
			}
		}
		x += w
	}
}

// DrawLines places every line at its own position.
func (c *Canvas) DrawLines(lines []Line) {
	for _, ln := range lines {
		c.Draw(ln.X, ln.Y, ln.Text)
	}
}

// String renders the grid, one row per line.
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		for _, r := range row {
			if r != wide {
				b.WriteRune(r)
			}
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func (c *Canvas) set(x, y int, r rune) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	// Overwriting half of a wide rune blanks the other half.
	if old := c.cells[y][x]; old == wide && x > 0 {
		c.cells[y][x-1] = ' '
	} else if x+1 < c.width && c.cells[y][x+1] == wide {
		c.cells[y][x+1] = ' '
	}
	c.cells[y][x] = r
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

// Render lays out text for geo and rasterizes it, border first.
func Render(text string, geo Geometry, border bool) string {
	c := NewCanvas(geo.Width, geo.Height)
	if border {
		c.Box(BoxBorder)
	}
	c.DrawLines(Layout(text, geo))
	return c.String()
}
