// Package dispatch runs a matched command under one of four execution
// policies: through a shell or directly, in the foreground or detached in
// the background.
//
// Background children are started in their own process group with stdout
// and stderr redirected to files, then released: the launcher never waits
// on them and their exit status is never reported.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

// Policy selects how a command is executed.
type Policy int

const (
	ShellBackground Policy = iota
	ShellForeground
	DirectBackground
	DirectForeground
)

// PolicyFor maps the two config switches to a Policy.
func PolicyFor(useShell, background bool) Policy {
	switch {
	case useShell && background:
		return ShellBackground
	case useShell:
		return ShellForeground
	case background:
		return DirectBackground
	default:
		return DirectForeground
	}
}

func (p Policy) String() string {
	switch p {
	case ShellBackground:
		return "shell-background"
	case ShellForeground:
		return "shell-foreground"
	case DirectBackground:
		return "direct-background"
	case DirectForeground:
		return "direct-foreground"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

func (p Policy) valid() bool { return p >= ShellBackground && p <= DirectForeground }

// UsesShell reports whether the command is wrapped in `shell -c`.
func (p Policy) UsesShell() bool { return p == ShellBackground || p == ShellForeground }

// Background reports whether the child is detached.
func (p Policy) Background() bool { return p == ShellBackground || p == DirectBackground }

// DefaultShell is used when no shell is configured.
const DefaultShell = "/bin/bash"

var (
	// ErrUnsupportedExecutionTarget is returned for a Policy outside the four
	// known values.
	ErrUnsupportedExecutionTarget = errors.New("unsupported execution target")
	// ErrEmptyCommand is returned when there is nothing to run.
	ErrEmptyCommand = errors.New("empty command")
)

// Dispatcher executes commands under a fixed policy.
type Dispatcher struct {
	policy Policy
	shell  string
	stdout string
	stderr string
	home   string
	logger *zap.Logger

	stdin        io.Reader
	fgOut, fgErr io.Writer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithShell sets the shell used by the shell policies. It may carry its own
// arguments ("/bin/bash --login").
func WithShell(shell string) Option {
	return func(d *Dispatcher) {
		if shell != "" {
			d.shell = shell
		}
	}
}

// WithRedirect sets the files background children write stdout and stderr to.
// An empty path discards that stream.
func WithRedirect(stdout, stderr string) Option {
	return func(d *Dispatcher) {
		d.stdout = stdout
		d.stderr = stderr
	}
}

// WithHome overrides the directory substituted for '~'.
func WithHome(home string) Option {
	return func(d *Dispatcher) {
		d.home = home
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithStdio replaces the standard streams foreground children inherit.
func WithStdio(in io.Reader, out, errOut io.Writer) Option {
	return func(d *Dispatcher) {
		d.stdin = in
		d.fgOut = out
		d.fgErr = errOut
	}
}

// New returns a Dispatcher for policy.
func New(policy Policy, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		policy: policy,
		shell:  DefaultShell,
		logger: zap.NewNop(),
		stdin:  os.Stdin,
		fgOut:  os.Stdout,
		fgErr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Policy returns the dispatcher's policy.
func (d *Dispatcher) Policy() Policy { return d.policy }

// ExpandHome replaces every '~' in command with home. This is plain text
// substitution: quoted and mid-word tildes are replaced too.
func ExpandHome(command, home string) string {
	return strings.ReplaceAll(command, "~", home)
}

// Command builds the process for command without starting it. Stdio is
// left unset.
func (d *Dispatcher) Command(command string) (*exec.Cmd, error) {
	if !d.policy.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExecutionTarget, d.policy)
	}
	home, err := d.homeDir()
	if err != nil {
		return nil, err
	}
	command = ExpandHome(command, home)

	var argv []string
	if d.policy.UsesShell() {
		shell, err := shellwords.Parse(d.shell)
		if err != nil {
			return nil, fmt.Errorf("parse shell %q: %w", d.shell, err)
		}
		if len(shell) == 0 {
			shell = []string{DefaultShell}
		}
		argv = append(shell, "-c", command)
	} else {
		argv, err = shellwords.Parse(command)
		if err != nil {
			return nil, fmt.Errorf("parse command %q: %w", command, err)
		}
		if len(argv) == 0 {
			return nil, ErrEmptyCommand
		}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if d.policy.Background() {
		cmd.SysProcAttr = detachAttr()
	}
	return cmd, nil
}

// Dispatch runs command. Background policies return as soon as the child has
// started; foreground policies block until it exits. A foreground child
// exiting non-zero is logged, not returned: only failing to run it is an
// error.
func (d *Dispatcher) Dispatch(ctx context.Context, command string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd, err := d.Command(command)
	if err != nil {
		return err
	}
	log := d.logger.With(zap.String("policy", d.policy.String()), zap.Strings("argv", cmd.Args))

	if d.policy.Background() {
		return d.spawnDetached(cmd, log)
	}

	cmd.Stdin, cmd.Stdout, cmd.Stderr = d.stdin, d.fgOut, d.fgErr
	log.Debug("running foreground command")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Warn("command exited non-zero", zap.Int("code", exitErr.ExitCode()))
			return nil
		}
		return fmt.Errorf("run %s: %w", cmd.Path, err)
	}
	return nil
}

func (d *Dispatcher) spawnDetached(cmd *exec.Cmd, log *zap.Logger) error {
	out, err := openRedirect(d.stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	errOut := out
	if d.stderr != d.stdout {
		errOut, err = openRedirect(d.stderr)
		if err != nil {
			return err
		}
		defer errOut.Close()
	}
	cmd.Stdout, cmd.Stderr = out, errOut

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	log.Info("spawned detached command", zap.Int("pid", cmd.Process.Pid),
		zap.String("stdout", d.stdout), zap.String("stderr", d.stderr))
	// The child keeps its own copies of the redirect files.
	return cmd.Process.Release()
}

// openRedirect truncates (or creates) path and its parent directories.
// An empty path opens the null device.
func openRedirect(path string) (*os.File, error) {
	if path == "" {
		path = os.DevNull
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create redirect dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open redirect %s: %w", path, err)
	}
	return f, nil
}

func (d *Dispatcher) homeDir() (string, error) {
	if d.home != "" {
		return d.home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home, nil
}
