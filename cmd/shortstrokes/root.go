package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"shortstrokes/internal/config"
	"shortstrokes/internal/dispatch"
	"shortstrokes/internal/logging"
	"shortstrokes/internal/term"
	"shortstrokes/internal/ui"
)

const versionTemplate = `ShortStrokes {{.Version}}
https://github.com/Noah2610/ShortStrokes
by Noah Rosenzweig
`

// optionFlags are the flags that override config options. Flag names are the
// option keys with '-' for '_'.
var optionFlags = []string{
	"width", "height", "text-padding",
	"shell", "no-shell",
	"exec-bg", "exec-fg",
	"no-border",
	"cmd-stdout", "cmd-stderr",
}

type rootFlags struct {
	configPath string
	force      bool
	logFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "shortstrokes",
		Short: "Type a short string, run the command bound to it",
		Long: `ShortStrokes opens a small overlay in the terminal and captures what you
type. As soon as the text matches one of the keybindings in your config, the
bound command runs and the overlay closes. Escape clears the text, or quits
when there is nothing to clear.`,
		Version:       "1.0",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}
	cmd.SetVersionTemplate(versionTemplate)

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&f.configPath, "config", "c", "", "config file to use instead of searching the default locations")
	flags.BoolVarP(&f.force, "force", "f", false, "accept a config file without a .yml/.yaml extension")
	flags.IntP("width", "w", config.DefaultWidth, "overlay width in columns")
	flags.Int("height", config.DefaultHeight, "overlay height in rows")
	flags.IntP("text-padding", "p", config.DefaultTextPadding, "columns kept free on each side of the text")
	flags.StringP("shell", "s", dispatch.DefaultShell, "shell used to run commands")
	flags.Bool("no-shell", false, "run commands directly instead of through the shell")
	flags.BoolP("exec-bg", "b", false, "run commands detached in the background")
	flags.Bool("exec-fg", false, "run commands in the foreground (default)")
	flags.Bool("no-border", false, "don't draw a border around the overlay")
	flags.String("cmd-stdout", "", "file receiving a background command's stdout")
	flags.String("cmd-stderr", "", "file receiving a background command's stderr")
	flags.StringVar(&f.logFile, "log-file", "", "write debug logs to this file")
	flags.BoolVar(&f.verbose, "verbose", false, "log at debug level")
	flags.SetNormalizeFunc(normalizeOption)

	return cmd
}

// normalizeOption maps every alias of an option (cols, rows, bg, borderless,
// text_padding, ...) onto the flag's name.
func normalizeOption(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(config.CanonicalKey(name), "_", "-"))
}

// overrides collects the option flags the user actually set, keyed by
// option name. Values stay strings; config.Load resolves constants in them
// and coerces them like config file values.
func overrides(flags *pflag.FlagSet) map[string]any {
	out := map[string]any{}
	for _, name := range optionFlags {
		fl := flags.Lookup(name)
		if fl == nil || !fl.Changed {
			continue
		}
		out[strings.ReplaceAll(name, "-", "_")] = fl.Value.String()
	}
	return out
}

func run(cmd *cobra.Command, f rootFlags) error {
	log, err := logging.New(f.logFile, f.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := term.Require(term.File{F: os.Stdin}); err != nil {
		return err
	}

	root, err := config.Root()
	if err != nil {
		return err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("no home directory", zap.Error(err))
	}

	cfg, err := config.Load(config.Options{
		Path:      f.configPath,
		Force:     f.force,
		Overrides: overrides(cmd.Flags()),
		Root:      root,
		Home:      home,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	size, err := term.File{F: os.Stdout}.Size()
	if err != nil {
		log.Debug("terminal size unknown, waiting for resize", zap.Error(err))
	}

	s := cfg.Settings
	d := dispatch.New(s.Policy(),
		dispatch.WithShell(s.Shell),
		dispatch.WithRedirect(s.CmdStdout, s.CmdStderr),
		dispatch.WithHome(home),
		dispatch.WithLogger(log),
	)
	log.Info("starting session",
		zap.String("config", cfg.Path),
		zap.Stringer("policy", d.Policy()),
		zap.Int("keybindings", cfg.Keybindings.Len()),
	)

	_, err = ui.NewEngine(cfg.Keybindings, d, ui.Options{
		Width:    s.Width,
		Height:   s.Height,
		Padding:  s.TextPadding,
		Border:   !s.NoBorder,
		Terminal: size,
		Logger:   log,
	}).Run(cmd.Context())
	return err
}
