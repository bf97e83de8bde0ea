// Package input turns key events into edits of the launcher's input buffer.
package input

import "unicode/utf8"

// Kind distinguishes printable input from the editing keys.
type Kind int

const (
	Char      Kind = iota // printable text, see Event.Text
	Escape                // clear the buffer, or cancel when it is empty
	Backspace             // drop the last character
	Enter                 // append a newline
	Interrupt             // ctrl+c: cancel regardless of the buffer
)

// Event is one key press.
type Event struct {
	Kind Kind
	Text string // set for Char only
}

// CharEvent is shorthand for a printable key press.
func CharEvent(s string) Event { return Event{Kind: Char, Text: s} }

// State is the capture state, derived from the buffer.
type State int

const (
	Idle State = iota
	Editing
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Transition tells the caller what to do after an event.
type Transition struct {
	Redraw    bool // the buffer changed (or was cleared) and must be re-rendered
	Check     bool // run the shortcut matcher against the buffer
	Cancelled bool // the session is over, no command runs
}

// Capture owns the input buffer. The zero value is an empty, idle capture.
type Capture struct {
	buf       string
	cancelled bool
}

// Buffer returns the text accepted since the last clear.
func (c *Capture) Buffer() string { return c.buf }

// State reports Idle, Editing or Cancelled.
func (c *Capture) State() State {
	switch {
	case c.cancelled:
		return Cancelled
	case c.buf == "":
		return Idle
	default:
		return Editing
	}
}

// Feed applies one event. Events after cancellation are ignored.
func (c *Capture) Feed(ev Event) Transition {
	if c.cancelled {
		return Transition{Cancelled: true}
	}
	switch ev.Kind {
	case Interrupt:
		c.cancelled = true
		return Transition{Cancelled: true}
	case Escape:
		if c.buf == "" {
			c.cancelled = true
			return Transition{Cancelled: true}
		}
		c.buf = ""
		return Transition{Redraw: true}
	case Backspace:
		if _, size := utf8.DecodeLastRuneInString(c.buf); size > 0 {
			c.buf = c.buf[:len(c.buf)-size]
		}
		return Transition{Redraw: true}
	case Enter:
		c.buf += "\n"
		return Transition{Redraw: true}
	case Char:
		if ev.Text == "" {
			return Transition{}
		}
		c.buf += ev.Text
		return Transition{Redraw: true, Check: true}
	}
	return Transition{}
}
