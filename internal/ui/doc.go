// Package ui runs the launcher overlay with Bubble Tea.
//
// Pieces:
//   - Session: the tea.Model. Feeds key messages to an input.Capture, renders
//     the buffer with layout.Render, and checks the keybinding table after
//     every printable key.
//   - Engine: runs a Session in a tea.Program and, once the program has
//     restored the terminal, issues the single dispatch a match asked for.
//
// A session ends exactly once, either Cancelled (Escape on an empty buffer,
// ctrl+c) or Dispatched (the buffer matched a trigger). Key messages that
// arrive after that are dropped.
package ui
