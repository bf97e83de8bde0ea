// Package keybind holds the trigger-string to command table and its
// exact-match lookup.
package keybind

import (
	"errors"
	"sort"
)

// ErrNoKeybindings is returned when a table would be empty.
var ErrNoKeybindings = errors.New("no keybindings given")

// Table maps trigger strings to commands. A trigger is compared verbatim
// against the whole input buffer: case, whitespace and embedded newlines
// all count. A Table is not modified after NewTable.
type Table struct {
	bindings map[string]string
}

// NewTable copies bindings into a Table. An empty map is an error.
func NewTable(bindings map[string]string) (*Table, error) {
	if len(bindings) == 0 {
		return nil, ErrNoKeybindings
	}
	t := &Table{bindings: make(map[string]string, len(bindings))}
	for trigger, cmd := range bindings {
		t.bindings[trigger] = cmd
	}
	return t, nil
}

// Match returns the command bound to exactly buffer. There is no prefix or
// fuzzy matching: "gg" matches neither "g" nor "ggg".
func (t *Table) Match(buffer string) (string, bool) {
	cmd, ok := t.bindings[buffer]
	return cmd, ok
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}

// Triggers returns every trigger string, sorted. Used for logging.
func (t *Table) Triggers() []string {
	out := make([]string, 0, len(t.bindings))
	for k := range t.bindings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
