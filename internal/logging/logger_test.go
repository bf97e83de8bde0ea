package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestNew_NoPathIsNop(t *testing.T) {
	l, err := New("", true)
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Errorf("no-op logger should have nothing enabled")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ss.log")

	l, err := New(path, false)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("hidden")
	l.Info("dispatched")
	_ = l.Sync()

	got := readLog(t, path)
	if !strings.Contains(got, `"msg":"dispatched"`) {
		t.Errorf("log missing info entry:\n%s", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("debug entry written at info level:\n%s", got)
	}
}

func TestNew_Verbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ss.log")

	l, err := New(path, true)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("visible")
	_ = l.Sync()

	if got := readLog(t, path); !strings.Contains(got, "visible") {
		t.Errorf("debug entry missing:\n%s", got)
	}
}
