package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shortstrokes/internal/input"
	"shortstrokes/internal/keybind"
	"shortstrokes/internal/layout"
	"shortstrokes/internal/term"
)

// Options configures the overlay.
type Options struct {
	Width    int
	Height   int
	Padding  int
	Border   bool
	Terminal term.Size // initial terminal size, updated by tea.WindowSizeMsg
	Logger   *zap.Logger
}

// Session is the launcher's tea.Model.
type Session struct {
	capture  input.Capture
	bindings *keybind.Table
	opts     Options
	termSize term.Size
	log      *zap.Logger

	outcome Outcome
	trigger string
	command string
}

var _ tea.Model = (*Session)(nil)

// NewSession returns a running session over bindings.
func NewSession(bindings *keybind.Table, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		bindings: bindings,
		opts:     opts,
		termSize: opts.Terminal,
		log:      log,
	}
}

// Init implements tea.Model.
func (s *Session) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.outcome != Running {
		return s, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.termSize = term.Size{Rows: msg.Height, Cols: msg.Width}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// handleKey feeds the message's key presses one at a time and checks the
// buffer after each printable one. The first match ends the session and the
// rest of the message is dropped.
func (s *Session) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	events := input.FromKeyMsg(msg)
	if len(events) == 0 {
		s.log.Debug("ignored key", zap.String("key", msg.String()))
		return s, nil
	}
	for _, ev := range events {
		tr := s.capture.Feed(ev)
		if tr.Cancelled {
			s.outcome = Cancelled
			s.log.Info("session cancelled")
			return s, tea.Quit
		}
		if !tr.Check {
			continue
		}
		buf := s.capture.Buffer()
		if cmd, ok := s.bindings.Match(buf); ok {
			s.outcome = Dispatched
			s.trigger = buf
			s.command = cmd
			s.log.Info("keybinding matched", zap.String("trigger", buf))
			return s, tea.Quit
		}
	}
	return s, nil
}

// View implements tea.Model. A finished session renders nothing so the
// overlay is gone before the command runs.
func (s *Session) View() string {
	if s.outcome != Running {
		return ""
	}
	geo := s.Geometry()
	box := Styles.Overlay.Render(layout.Render(s.capture.Buffer(), geo, s.opts.Border))
	return place(box, s.termSize.Cols, s.termSize.Rows, geo.Width, geo.Height)
}

// Geometry is the overlay size clamped to the current terminal.
func (s *Session) Geometry() layout.Geometry {
	w, h := term.Bound(s.termSize, s.opts.Width, s.opts.Height)
	return layout.Geometry{Width: w, Height: h, Padding: s.opts.Padding}
}

// Buffer returns the text typed so far.
func (s *Session) Buffer() string { return s.capture.Buffer() }

// Result reports how the session ended. Outcome is Running until it does.
func (s *Session) Result() Result {
	return Result{Outcome: s.outcome, Trigger: s.trigger, Command: s.command}
}
