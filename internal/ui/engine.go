package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shortstrokes/internal/keybind"
)

// Dispatcher runs a matched command.
type Dispatcher interface {
	Dispatch(ctx context.Context, command string) error
}

// Engine runs one launcher session from first key to dispatch.
type Engine struct {
	bindings   *keybind.Table
	dispatcher Dispatcher
	opts       Options
	progOpts   []tea.ProgramOption
}

// NewEngine returns an Engine. programOpts are appended after the defaults
// (alternate screen), so tests can swap input and output.
func NewEngine(bindings *keybind.Table, d Dispatcher, opts Options, programOpts ...tea.ProgramOption) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		bindings:   bindings,
		dispatcher: d,
		opts:       opts,
		progOpts:   programOpts,
	}
}

// Run shows the overlay until the session is cancelled or a keybinding
// matches. The matched command is dispatched after the program has exited
// and the terminal is restored, so foreground commands get a clean TTY.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	session := NewSession(e.bindings, e.opts)
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, e.progOpts...)

	if _, err := tea.NewProgram(session, opts...).Run(); err != nil {
		return session.Result(), fmt.Errorf("run overlay: %w", err)
	}

	res := session.Result()
	if res.Outcome != Dispatched {
		return res, nil
	}
	e.opts.Logger.Debug("dispatching", zap.String("command", res.Command))
	if err := e.dispatcher.Dispatch(ctx, res.Command); err != nil {
		return res, fmt.Errorf("dispatch %q: %w", res.Trigger, err)
	}
	return res, nil
}
