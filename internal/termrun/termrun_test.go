package termrun

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type recorder struct {
	lines []string
	err   error
}

func (r *recorder) Dispatch(_ context.Context, command string) error {
	r.lines = append(r.lines, command)
	return r.err
}

func TestCommandLine(t *testing.T) {
	got := Defaults().CommandLine("htop")
	want := `termite --role 'FLOAT' --exec '/bin/bash --login -i -c "htop"'`
	if got != want {
		t.Errorf("CommandLine = %q, want %q", got, want)
	}
}

func TestLauncher_Run(t *testing.T) {
	rec := &recorder{}
	l := NewLauncher(Options{Terminal: "alacritty", Shell: "zsh", Role: "POPUP"}, WithRunner(rec))

	if err := l.Run(context.Background(), "make test"); err != nil {
		t.Fatal(err)
	}
	want := `alacritty --role 'POPUP' --exec 'zsh -c "make test"'`
	if len(rec.lines) != 1 || rec.lines[0] != want {
		t.Errorf("dispatched %q, want [%q]", rec.lines, want)
	}
}

func TestLauncher_Edit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	l := NewLauncher(Defaults(), WithRunner(rec))

	if err := l.Edit(context.Background(), file); err != nil {
		t.Fatal(err)
	}
	want := Defaults().CommandLine("vim " + file)
	if len(rec.lines) != 1 || rec.lines[0] != want {
		t.Errorf("dispatched %q, want [%q]", rec.lines, want)
	}
}

func TestLauncher_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	tests := []struct {
		name string
		call func(*Launcher) error
		want error
	}{
		{"edit missing file", func(l *Launcher) error { return l.Edit(context.Background(), missing) }, ErrFileNotFound},
		{"edit without file", func(l *Launcher) error { return l.Edit(context.Background(), "") }, ErrMissingCommandArgument},
		{"run without command", func(l *Launcher) error { return l.Run(context.Background(), "") }, ErrMissingCommandArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			err := tt.call(NewLauncher(Defaults(), WithRunner(rec)))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if len(rec.lines) != 0 {
				t.Errorf("dispatched %q, want nothing", rec.lines)
			}
		})
	}
}

func TestLauncher_RunnerError(t *testing.T) {
	boom := errors.New("boom")
	l := NewLauncher(Defaults(), WithRunner(&recorder{err: boom}))

	if err := l.Run(context.Background(), "ls"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestNewLauncher_DefaultRunner(t *testing.T) {
	if l := NewLauncher(Defaults()); l.runner == nil {
		t.Errorf("no default runner")
	}
}
