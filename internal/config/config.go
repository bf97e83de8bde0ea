// Package config loads the launcher's YAML file, resolves its constants and
// merges command-line overrides into typed Settings.
//
// A config file has three sections:
//
//	constants:    # name -> scalar, referenced as @name
//	config:       # display and execution options, see Settings
//	keybindings:  # trigger string -> command
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"shortstrokes/internal/constants"
	"shortstrokes/internal/dispatch"
	"shortstrokes/internal/keybind"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("invalid config")
	ErrNotYAML        = errors.New("config file doesn't have a YAML extension (.yml || .yaml)")
)

// ShellConstant is added to the constant table after the config section is
// resolved, unless the user declared it.
const ShellConstant = "SHELL"

// Defaults for options the config and flags leave unset.
const (
	DefaultWidth       = 47
	DefaultHeight      = 7
	DefaultTextPadding = 4
)

// Settings are the resolved display and execution options.
type Settings struct {
	Width          int    `mapstructure:"width"`
	Height         int    `mapstructure:"height"`
	TextPadding    int    `mapstructure:"text_padding"`
	Shell          string `mapstructure:"shell"`
	NoShell        bool   `mapstructure:"no_shell"`
	ExecBackground bool   `mapstructure:"exec_bg"`
	NoBorder       bool   `mapstructure:"no_border"`
	CmdStdout      string `mapstructure:"cmd_stdout"`
	CmdStderr      string `mapstructure:"cmd_stderr"`
}

// Policy returns the dispatch policy the settings select.
func (s Settings) Policy() dispatch.Policy {
	return dispatch.PolicyFor(!s.NoShell, s.ExecBackground)
}

// DefaultSettings returns the settings used when nothing overrides them.
func DefaultSettings(root string) Settings {
	out := OutDir(root)
	return Settings{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		TextPadding: DefaultTextPadding,
		Shell:       dispatch.DefaultShell,
		CmdStdout:   filepath.Join(out, "cmd_stdout"),
		CmdStderr:   filepath.Join(out, "cmd_stderr"),
	}
}

// aliases maps every accepted spelling of an option to its canonical key.
// The command line accepts the same spellings.
var aliases = map[string]string{
	"cols": "width", "columns": "width",
	"rows": "height", "lines": "height",
	"text-padding":    "text_padding",
	"no-shell":        "no_shell",
	"bg":              "exec_bg",
	"exec-bg":         "exec_bg",
	"exec-background": "exec_bg",
	"fg":              "exec_fg",
	"exec-fg":         "exec_fg",
	"exec-foreground": "exec_fg",
	"no-border":       "no_border",
	"borderless":      "no_border",
	"stdout":          "cmd_stdout",
	"cmdout":          "cmd_stdout",
	"cmd-stdout":      "cmd_stdout",
	"stderr":          "cmd_stderr",
	"cmderr":          "cmd_stderr",
	"cmd-stderr":      "cmd_stderr",
}

// CanonicalKey returns the canonical option name for key.
func CanonicalKey(key string) string {
	if c, ok := aliases[key]; ok {
		return c
	}
	return key
}

// Aliases returns the alternative spellings of canonical, sorted.
func Aliases(canonical string) []string {
	var out []string
	for alias, c := range aliases {
		if c == canonical {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// File is the raw content of a config file.
type File struct {
	Path        string         `yaml:"-"`
	Constants   map[string]any `yaml:"constants"`
	Config      map[string]any `yaml:"config"`
	Keybindings map[string]any `yaml:"keybindings"`
}

// ReadFile parses the config file at path. Unless force is set, path must
// end in .yml or .yaml.
func ReadFile(path string, force bool) (*File, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: file %s doesn't exist", ErrConfigNotFound, path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".yml" && ext != ".yaml" && !force {
		return nil, fmt.Errorf("%w: %s", ErrNotYAML, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s isn't a valid YAML file: %v", ErrConfigParse, path, err)
	}
	f.Path = path
	return &f, nil
}

// Discover reads the first existing file of paths.
func Discover(paths []string) (*File, error) {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return ReadFile(p, true)
		}
	}
	return nil, fmt.Errorf("%w: looked in %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// Options control Load.
type Options struct {
	Path      string         // explicit config file; empty means Discover
	Force     bool           // accept Path without a YAML extension
	Overrides map[string]any // command-line values keyed by option name
	Root      string         // installation root
	Home      string         // home directory searched for config files
	Logger    *zap.Logger
}

// Config is everything the launcher needs after startup.
type Config struct {
	Path        string
	Settings    Settings
	Constants   constants.Table
	Keybindings *keybind.Table
}

// Load reads, resolves and validates the configuration:
// constants are bootstrapped against the installation root, the config
// section is resolved, SHELL is defined, overrides are resolved and merged
// on top, and finally the keybindings are resolved.
func Load(opts Options) (*Config, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		file *File
		err  error
	)
	if opts.Path != "" {
		file, err = ReadFile(opts.Path, opts.Force)
	} else {
		file, err = Discover(SearchPaths(opts.Home, opts.Root))
	}
	if err != nil {
		return nil, err
	}
	log.Debug("loaded config file", zap.String("path", file.Path))

	table, err := constants.Bootstrap(constants.Table{constants.RootName: opts.Root}, file.Constants)
	if errors.Is(err, constants.ErrKeyCollision) {
		return nil, fmt.Errorf("%w: constants: %w", ErrConfigParse, err)
	}
	if err != nil {
		return nil, fmt.Errorf("constants: %w", err)
	}

	fileOpts, err := resolveOptions(table, file.Config)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if _, ok := table.Lookup(ShellConstant); !ok {
		shell := dispatch.DefaultShell
		if s, ok := fileOpts["shell"].(string); ok && s != "" {
			shell = s
		}
		table = table.With(ShellConstant, shell)
	}

	cliOpts, err := resolveOptions(table, opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("command line: %w", err)
	}
	for k, v := range cliOpts {
		fileOpts[k] = v
	}

	settings, err := decodeSettings(fileOpts, DefaultSettings(opts.Root), log)
	if err != nil {
		return nil, err
	}

	bindings, err := resolveKeybindings(table, file.Keybindings)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved keybindings", zap.Int("count", bindings.Len()))

	return &Config{
		Path:        file.Path,
		Settings:    settings,
		Constants:   table,
		Keybindings: bindings,
	}, nil
}

// resolveOptions substitutes constants, canonicalises keys and coerces values.
func resolveOptions(table constants.Table, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	if len(raw) == 0 {
		return out, nil
	}
	resolved, err := resolve(table, raw)
	if err != nil {
		return nil, err
	}
	for key, v := range resolved.(map[string]any) {
		switch v.(type) {
		case map[string]any, map[any]any, []any:
			return nil, fmt.Errorf("%w: option %q must be a scalar", ErrConfigParse, key)
		}
		val := ParseValue(v)
		key = CanonicalKey(key)
		if key == "shell" && val.Kind == KindBool && !val.Bool {
			out["no_shell"] = true
			continue
		}
		out[key] = val.Native()
	}
	// exec_fg is not a setting of its own; when true it forces exec_bg off.
	if fg, ok := out["exec_fg"]; ok {
		if b, isBool := fg.(bool); isBool && b {
			out["exec_bg"] = false
		}
		delete(out, "exec_fg")
	}
	return out, nil
}

// resolve substitutes constants in raw. Keys that collide after substitution
// make the file invalid.
func resolve(table constants.Table, raw map[string]any) (any, error) {
	resolved, err := constants.Resolve(table, raw)
	if errors.Is(err, constants.ErrKeyCollision) {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	return resolved, err
}

func decodeSettings(opts map[string]any, defaults Settings, log *zap.Logger) (Settings, error) {
	settings := defaults
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := dec.Decode(opts); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		log.Warn("ignoring unknown config options", zap.Strings("keys", md.Unused))
	}
	if settings.Width <= 0 || settings.Height <= 0 {
		return Settings{}, fmt.Errorf("%w: width and height must be positive", ErrConfigParse)
	}
	if settings.TextPadding < 0 {
		return Settings{}, fmt.Errorf("%w: text_padding must not be negative", ErrConfigParse)
	}
	return settings, nil
}

func resolveKeybindings(table constants.Table, raw map[string]any) (*keybind.Table, error) {
	if len(raw) == 0 {
		return nil, keybind.ErrNoKeybindings
	}
	resolved, err := resolve(table, raw)
	if err != nil {
		return nil, fmt.Errorf("keybindings: %w", err)
	}
	bindings := make(map[string]string, len(raw))
	for trigger, v := range resolved.(map[string]any) {
		switch cmd := v.(type) {
		case string:
			bindings[trigger] = cmd
		case nil:
			return nil, fmt.Errorf("%w: keybinding %q has no command", ErrConfigParse, trigger)
		case map[string]any, map[any]any, []any:
			return nil, fmt.Errorf("%w: keybinding %q must map to a command string", ErrConfigParse, trigger)
		default:
			bindings[trigger] = ParseValue(cmd).String()
		}
	}
	return keybind.NewTable(bindings)
}

// Hint returns the advice printed under an error message, or "".
func Hint(err error) string {
	switch {
	case errors.Is(err, constants.ErrUndefinedConstant):
		return "Define it in your config under 'constants' to use it."
	case errors.Is(err, keybind.ErrNoKeybindings):
		return "Check that your config file contains keybindings under a key named 'keybindings'."
	case errors.Is(err, ErrNotYAML):
		return "If you are sure it is a YAML file, use -f or --force to ignore this error."
	case errors.Is(err, ErrConfigNotFound):
		return "Create ~/.config/shortstrokes/config.yml or pass one with --config."
	case errors.Is(err, ErrConfigParse):
		return "Please use a proper YAML configuration file."
	}
	return ""
}
