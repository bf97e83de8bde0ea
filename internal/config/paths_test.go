package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoot_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(RootEnv, dir)

	root, err := Root()
	if err != nil {
		t.Fatal(err)
	}
	if root != dir {
		t.Errorf("Root = %q, want %q", root, dir)
	}
}

func TestRoot_Executable(t *testing.T) {
	t.Setenv(RootEnv, "")

	root, err := Root()
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(root) {
		t.Errorf("Root = %q, want an absolute path", root)
	}
}

func TestSearchPaths(t *testing.T) {
	want := []string{
		"/home/u/.config/shortstrokes/config.yml",
		"/home/u/.shortstrokes.yml",
		"/opt/ss/config.yml",
	}
	if diff := cmp.Diff(want, SearchPaths("/home/u", "/opt/ss")); diff != "" {
		t.Errorf("SearchPaths mismatch (-want +got):\n%s", diff)
	}
	if got := OutDir("/opt/ss"); got != "/opt/ss/.out" {
		t.Errorf("OutDir = %q", got)
	}
}
