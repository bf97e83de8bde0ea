// Package termrun opens a command in a new terminal emulator window.
//
// It backs the ssrun helper, which keybindings use to launch editors and
// long-running commands in a floating terminal instead of the launcher's own.
package termrun

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"shortstrokes/internal/dispatch"
)

var (
	ErrMissingCommandArgument = errors.New("missing command argument")
	ErrFileNotFound           = errors.New("file doesn't exist")
)

// LauncherShell runs the assembled terminal command line.
const LauncherShell = "/bin/sh"

// Options select the terminal emulator and what runs inside it.
type Options struct {
	Terminal string
	Shell    string // shell started inside the terminal, with its arguments
	Editor   string
	Role     string // window role, used by window managers to float the window
}

// Defaults returns the options used for flags left unset.
func Defaults() Options {
	return Options{
		Terminal: "termite",
		Shell:    "/bin/bash --login -i",
		Editor:   "vim",
		Role:     "FLOAT",
	}
}

// CommandLine returns the shell command that opens a terminal running
// command:
//
//	TERMINAL --role 'ROLE' --exec 'SHELL -c "COMMAND"'
//
// Nothing is escaped; command must not contain single or double quotes that
// would close the surrounding ones.
func (o Options) CommandLine(command string) string {
	return fmt.Sprintf(`%s --role '%s' --exec '%s -c "%s"'`, o.Terminal, o.Role, o.Shell, command)
}

// Runner dispatches a shell command line.
type Runner interface {
	Dispatch(ctx context.Context, command string) error
}

// Launcher starts terminals detached from the caller.
type Launcher struct {
	opts   Options
	runner Runner
	log    *zap.Logger
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithRunner replaces the default detached /bin/sh dispatcher.
func WithRunner(r Runner) LauncherOption {
	return func(l *Launcher) { l.runner = r }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) LauncherOption {
	return func(l *Launcher) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLauncher returns a Launcher. By default the terminal is spawned through
// /bin/sh in its own process group with output discarded.
func NewLauncher(opts Options, options ...LauncherOption) *Launcher {
	l := &Launcher{opts: opts, log: zap.NewNop()}
	for _, o := range options {
		o(l)
	}
	if l.runner == nil {
		l.runner = dispatch.New(dispatch.ShellBackground,
			dispatch.WithShell(LauncherShell),
			dispatch.WithRedirect(os.DevNull, os.DevNull),
			dispatch.WithLogger(l.log),
		)
	}
	return l
}

// Edit opens file in the configured editor. The file must exist.
func (l *Launcher) Edit(ctx context.Context, file string) error {
	if file == "" {
		return fmt.Errorf("edit: no file given: %w", ErrMissingCommandArgument)
	}
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file '%s': %w", file, ErrFileNotFound)
		}
		return fmt.Errorf("stat %s: %w", file, err)
	}
	return l.launch(ctx, l.opts.Editor+" "+file)
}

// Run runs command inside the terminal's shell.
func (l *Launcher) Run(ctx context.Context, command string) error {
	if command == "" {
		return fmt.Errorf("run: no command given: %w", ErrMissingCommandArgument)
	}
	return l.launch(ctx, command)
}

func (l *Launcher) launch(ctx context.Context, command string) error {
	line := l.opts.CommandLine(command)
	l.log.Debug("opening terminal", zap.String("command_line", line))
	if err := l.runner.Dispatch(ctx, line); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	return nil
}
