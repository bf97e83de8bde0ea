// Package term answers the two questions the launcher asks of its terminal
// before starting the overlay: is it interactive, and how big is it.
package term

import (
	"errors"
	"os"

	"github.com/creack/pty"
	xterm "golang.org/x/term"
)

// ErrNotTerminal is returned when the launcher is not attached to a TTY.
var ErrNotTerminal = errors.New("shortstrokes needs an interactive terminal")

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows int
	Cols int
}

// Prober reports on a terminal. Implementations can be swapped for tests.
type Prober interface {
	IsTerminal() bool
	Size() (Size, error)
}

// File probes an open terminal file, usually os.Stdin or os.Stdout.
type File struct {
	F *os.File
}

// Ensure File implements Prober.
var _ Prober = File{}

// IsTerminal implements Prober.
func (f File) IsTerminal() bool {
	return f.F != nil && xterm.IsTerminal(int(f.F.Fd()))
}

// Size implements Prober using the TIOCGWINSZ ioctl.
func (f File) Size() (Size, error) {
	rows, cols, err := pty.Getsize(f.F)
	if err != nil {
		return Size{}, err
	}
	return Size{Rows: rows, Cols: cols}, nil
}

// Fixed is a Prober with a constant answer.
type Fixed struct {
	Terminal bool
	S        Size
}

// IsTerminal implements Prober.
func (f Fixed) IsTerminal() bool { return f.Terminal }

// Size implements Prober.
func (f Fixed) Size() (Size, error) { return f.S, nil }

// Require returns ErrNotTerminal unless p is a terminal.
func Require(p Prober) error {
	if !p.IsTerminal() {
		return ErrNotTerminal
	}
	return nil
}

// Bound clamps the configured overlay size to the terminal.
// A zero terminal dimension means unknown and leaves that side unclamped.
func Bound(s Size, width, height int) (int, int) {
	if s.Cols > 0 {
		width = min(width, s.Cols)
	}
	if s.Rows > 0 {
		height = min(height, s.Rows)
	}
	return width, height
}
