package term

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/creack/pty"
)

func TestBound(t *testing.T) {
	tests := []struct {
		name  string
		size  Size
		wantW int
		wantH int
	}{
		{"fits", Size{Rows: 24, Cols: 80}, 47, 7},
		{"clamped", Size{Rows: 5, Cols: 30}, 30, 5},
		{"unknown size", Size{}, 47, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Bound(tt.size, 47, 7)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Bound = %d, %d; want %d, %d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	if err := Require(Fixed{}); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("err = %v, want ErrNotTerminal", err)
	}
	if err := Require(Fixed{Terminal: true}); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestFile_RegularFileIsNotTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	p := File{F: f}
	if p.IsTerminal() {
		t.Errorf("regular file reported as a terminal")
	}
	if _, err := p.Size(); err == nil {
		t.Errorf("Size on a regular file should fail")
	}
}

func TestFile_PTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}); err != nil {
		t.Fatal(err)
	}

	p := File{F: tty}
	if !p.IsTerminal() {
		t.Errorf("pty slave not reported as a terminal")
	}
	size, err := p.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != (Size{Rows: 30, Cols: 100}) {
		t.Errorf("Size = %+v", size)
	}
}
