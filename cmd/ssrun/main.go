// Command ssrun opens a file or command in a new terminal emulator window.
//
//	ssrun edit FILE [flags]
//	ssrun run COMMAND... [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shortstrokes/internal/termrun"
)

var ErrNoKeyword = errors.New("no keywords given, nothing to do")

func main() {
	if err := newRootCmd(nil).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. runner is nil outside tests.
func newRootCmd(runner termrun.Runner) *cobra.Command {
	opts := termrun.Defaults()
	launcher := func() *termrun.Launcher {
		if runner != nil {
			return termrun.NewLauncher(opts, termrun.WithRunner(runner))
		}
		return termrun.NewLauncher(opts)
	}

	root := &cobra.Command{
		Use:           "ssrun",
		Short:         "Run a command in a new terminal emulator window",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ErrNoKeyword
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.Terminal, "terminal", "t", opts.Terminal, "terminal emulator to start")
	pf.StringVarP(&opts.Shell, "shell", "s", opts.Shell, "shell started inside the terminal")
	pf.StringVarP(&opts.Editor, "editor", "e", opts.Editor, "editor used by edit")
	pf.StringVarP(&opts.Role, "role", "r", opts.Role, "window role of the terminal")

	root.AddCommand(&cobra.Command{
		Use:     "edit FILE",
		Aliases: []string{"e"},
		Short:   "Edit FILE with the editor in a new terminal",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) > 0 {
				file = args[0]
			}
			return launcher().Edit(cmd.Context(), file)
		},
	})
	run := &cobra.Command{
		Use:     "run COMMAND...",
		Aliases: []string{"r", "exec"},
		Short:   "Run COMMAND in a new terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return launcher().Run(cmd.Context(), strings.Join(args, " "))
		},
	}
	// Flags after the first word of COMMAND belong to COMMAND.
	run.Flags().SetInterspersed(false)
	root.AddCommand(run)
	return root
}
