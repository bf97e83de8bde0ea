package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"shortstrokes/internal/config"
	"shortstrokes/internal/term"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := hint(err); hint != "" {
		fmt.Fprintf(w, "  %s\n", hint)
	}
}

func hint(err error) string {
	if errors.Is(err, term.ErrNotTerminal) {
		return "Run shortstrokes from a terminal emulator, e.g. bound to a hotkey that opens one."
	}
	return config.Hint(err)
}
