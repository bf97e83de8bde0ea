package layout

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender_BorderAndText(t *testing.T) {
	got := Render("gg", Geometry{Width: 9, Height: 5, Padding: 1}, true)
	want := strings.Join([]string{
		"+-------+",
		"|       |",
		"|  gg   |",
		"|       |",
		"+-------+",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRender_Borderless(t *testing.T) {
	got := Render("a", Geometry{Width: 3, Height: 3, Padding: 0}, false)
	want := "   \n a \n   "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanvas_ClipsOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Draw(-2, 0, "abcdef")
	c.Draw(2, 1, "xyz")
	c.Draw(0, 5, "never")
	want := "cdef\n  xy"
	if got := c.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanvas_WideRunes(t *testing.T) {
	c := NewCanvas(5, 1)
	c.Draw(0, 0, "日本語")
	// The third rune would need columns 4-5 and is clipped.
	if got := c.String(); got != "日本 " {
		t.Errorf("got %q", got)
	}
}

func TestCanvas_TinyBoxIsSkipped(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Box(BoxBorder)
	if got := c.String(); got != " " {
		t.Errorf("got %q", got)
	}
}
