// ABOUTME: ProcessTerminal implements Terminal on top of os.Stdout and golang.org/x/term
// ABOUTME: Writes are unbuffered, so every write is visible as soon as it returns

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ProcessTerminal is the process's standard output.
type ProcessTerminal struct {
	f *os.File
}

// NewProcessTerminal returns a ProcessTerminal bound to os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{f: os.Stdout}
}

// Write sends p to standard output.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.f.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to stdout: %w", err)
	}
	return n, nil
}

// Size returns the terminal dimensions. It fails when stdout is not a
// terminal (redirected to a file or pipe).
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// IsTerminal reports whether stdout is attached to a terminal.
func (t *ProcessTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.f.Fd()))
}
