package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Keys are the editing keys the launcher recognises. Anything else that is
// not printable is ignored.
var Keys = struct {
	Escape    key.Binding
	Backspace key.Binding
	Enter     key.Binding
	Interrupt key.Binding
}{
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear, or quit when empty"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
		key.WithHelp("backspace", "delete last character"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter", "ctrl+j"),
		key.WithHelp("enter", "new line"),
	),
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// FromKeyMsg converts a Bubble Tea key message into the key presses it
// stands for, in order. Bubble Tea coalesces printable runes read together
// (fast typing, paste, synthetic input) into one message; each rune becomes
// its own Char event so every one can be checked. An alt chord is what the
// terminal sends for Escape followed quickly by a key, so it becomes Escape
// then that key. Keys the launcher ignores (arrows, function keys and so
// on) yield nothing.
func FromKeyMsg(msg tea.KeyMsg) []Event {
	if msg.Alt {
		base := msg
		base.Alt = false
		return append([]Event{{Kind: Escape}}, FromKeyMsg(base)...)
	}
	switch {
	case key.Matches(msg, Keys.Interrupt):
		return []Event{{Kind: Interrupt}}
	case key.Matches(msg, Keys.Escape):
		return []Event{{Kind: Escape}}
	case key.Matches(msg, Keys.Backspace):
		return []Event{{Kind: Backspace}}
	case key.Matches(msg, Keys.Enter):
		return []Event{{Kind: Enter}}
	}
	switch msg.Type {
	case tea.KeyRunes:
		events := make([]Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, CharEvent(string(r)))
		}
		return events
	case tea.KeySpace:
		return []Event{CharEvent(" ")}
	}
	return nil
}
