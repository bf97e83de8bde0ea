package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv overrides the installation root. Useful when running from `go run`,
// where the executable lives in a temporary directory.
const RootEnv = "SHORTSTROKES_ROOT"

// Root returns the installation root: the directory holding the real
// (symlink-resolved) executable, unless RootEnv is set.
func Root() (string, error) {
	if dir := os.Getenv(RootEnv); dir != "" {
		return filepath.Abs(dir)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// SearchPaths lists the config files tried, in order, when no path is given.
func SearchPaths(home, root string) []string {
	return []string{
		filepath.Join(home, ".config", "shortstrokes", "config.yml"),
		filepath.Join(home, ".shortstrokes.yml"),
		filepath.Join(root, "config.yml"),
	}
}

// OutDir is where command output is redirected by default.
func OutDir(root string) string {
	return filepath.Join(root, ".out")
}
