//go:build unix

package dispatch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_BackgroundGetsOwnProcessGroup(t *testing.T) {
	for _, p := range []Policy{ShellBackground, DirectBackground} {
		cmd, err := New(p, WithShell("/bin/sh"), WithHome("/h")).Command("true")
		require.NoError(t, err)
		require.NotNil(t, cmd.SysProcAttr, p.String())
		assert.True(t, cmd.SysProcAttr.Setpgid, p.String())
	}
}

func TestDispatch_ShellForegroundInheritsStdio(t *testing.T) {
	var out, errOut bytes.Buffer
	d := New(ShellForeground,
		WithShell("/bin/sh"),
		WithHome("/home/me"),
		WithStdio(nil, &out, &errOut),
	)

	require.NoError(t, d.Dispatch(context.Background(), "echo ~/proj; echo oops >&2"))
	assert.Equal(t, "/home/me/proj\n", out.String())
	assert.Equal(t, "oops\n", errOut.String())
}

func TestDispatch_DirectForeground(t *testing.T) {
	var out bytes.Buffer
	d := New(DirectForeground, WithHome("/h"), WithStdio(nil, &out, &out))

	require.NoError(t, d.Dispatch(context.Background(), `echo "a  b"`))
	assert.Equal(t, "a  b\n", out.String())
}

func TestDispatch_ForegroundExitStatusIgnored(t *testing.T) {
	d := New(ShellForeground, WithShell("/bin/sh"), WithHome("/h"), WithStdio(nil, nil, nil))
	assert.NoError(t, d.Dispatch(context.Background(), "exit 3"))
}

func TestDispatch_ForegroundMissingBinary(t *testing.T) {
	d := New(DirectForeground, WithHome("/h"), WithStdio(nil, nil, nil))
	assert.Error(t, d.Dispatch(context.Background(), "definitely-not-a-real-binary-xyz"))
}

func TestDispatch_BackgroundRedirects(t *testing.T) {
	dir := t.TempDir()
	stdout := filepath.Join(dir, "out", "cmd_stdout")
	stderr := filepath.Join(dir, "out", "cmd_stderr")
	require.NoError(t, os.MkdirAll(filepath.Dir(stdout), 0o755))
	require.NoError(t, os.WriteFile(stdout, []byte("stale content\n"), 0o644))

	d := New(ShellBackground,
		WithShell("/bin/sh"),
		WithHome("/home/me"),
		WithRedirect(stdout, stderr),
	)
	require.NoError(t, d.Dispatch(context.Background(), "echo ~; echo bad >&2"))

	assertEventuallyFile(t, stdout, "/home/me\n")
	assertEventuallyFile(t, stderr, "bad\n")
}

func TestDispatch_DirectBackground(t *testing.T) {
	dir := t.TempDir()
	stdout := filepath.Join(dir, "cmd_stdout")

	d := New(DirectBackground, WithHome("/h"), WithRedirect(stdout, ""))
	require.NoError(t, d.Dispatch(context.Background(), "echo detached"))

	assertEventuallyFile(t, stdout, "detached\n")
}

func TestDispatch_BackgroundSharedRedirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "both")

	d := New(ShellBackground, WithShell("/bin/sh"), WithHome("/h"), WithRedirect(path, path))
	require.NoError(t, d.Dispatch(context.Background(), "echo one; echo two >&2"))

	assertEventuallyFile(t, path, "one\ntwo\n")
}

func TestDispatch_BackgroundDoesNotWait(t *testing.T) {
	d := New(ShellBackground, WithShell("/bin/sh"), WithHome("/h"), WithRedirect("", ""))

	start := time.Now()
	require.NoError(t, d.Dispatch(context.Background(), "sleep 2"))
	assert.Less(t, time.Since(start), time.Second)
}

func assertEventuallyFile(t *testing.T, path, want string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		b, err := os.ReadFile(path)
		return err == nil && string(b) == want
	}, 5*time.Second, 20*time.Millisecond, "content of %s", path)
}
