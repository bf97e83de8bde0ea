package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "cd /home/me/proj", ExpandHome("cd ~/proj", "/home/me"))
	assert.Equal(t, "echo '/home/me' a/home/meb", ExpandHome("echo '~' a~b", "/home/me"))
	assert.Equal(t, "ls", ExpandHome("ls", "/home/me"))
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, ShellBackground, PolicyFor(true, true))
	assert.Equal(t, ShellForeground, PolicyFor(true, false))
	assert.Equal(t, DirectBackground, PolicyFor(false, true))
	assert.Equal(t, DirectForeground, PolicyFor(false, false))

	assert.True(t, ShellBackground.UsesShell())
	assert.True(t, ShellBackground.Background())
	assert.False(t, DirectForeground.UsesShell())
	assert.False(t, DirectForeground.Background())
}

func TestCommand_TildeExpandedInEveryPolicy(t *testing.T) {
	for _, p := range []Policy{ShellBackground, ShellForeground, DirectBackground, DirectForeground} {
		t.Run(p.String(), func(t *testing.T) {
			d := New(p, WithShell("/bin/sh"), WithHome("/home/me"))
			cmd, err := d.Command("cd ~/proj")
			require.NoError(t, err)
			if p.UsesShell() {
				assert.Equal(t, []string{"/bin/sh", "-c", "cd /home/me/proj"}, cmd.Args)
			} else {
				assert.Equal(t, []string{"cd", "/home/me/proj"}, cmd.Args)
			}
		})
	}
}

func TestCommand_DirectHonoursQuotes(t *testing.T) {
	d := New(DirectForeground, WithHome("/h"))
	cmd, err := d.Command(`notify-send "two words" 'single quoted'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"notify-send", "two words", "single quoted"}, cmd.Args)
}

func TestCommand_ShellWithArguments(t *testing.T) {
	d := New(ShellForeground, WithShell("/bin/bash --login"), WithHome("/h"))
	cmd, err := d.Command("echo hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/bash", "--login", "-c", "echo hi"}, cmd.Args)
}

func TestCommand_ForegroundIsNotDetached(t *testing.T) {
	cmd, err := New(ShellForeground, WithHome("/h")).Command("true")
	require.NoError(t, err)
	assert.Nil(t, cmd.SysProcAttr)
}

func TestCommand_Empty(t *testing.T) {
	_, err := New(DirectForeground, WithHome("/h")).Command("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestDispatch_UnsupportedPolicy(t *testing.T) {
	err := New(Policy(42), WithHome("/h")).Dispatch(context.Background(), "true")
	assert.True(t, errors.Is(err, ErrUnsupportedExecutionTarget))
	assert.Contains(t, err.Error(), "policy(42)")
}

func TestDispatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(ShellForeground).Dispatch(ctx, "true")
	assert.ErrorIs(t, err, context.Canceled)
}
