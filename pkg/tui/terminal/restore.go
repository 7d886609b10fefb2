// ABOUTME: RestoreOnPanic terminates a half-drawn progress line before reporting a panic
// ABOUTME: Intended for use as a deferred call at the top of main

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred at the top of main. On panic it ends
// the progress line currently on w so the report starts on a clean line,
// prints the panic value and stack trace to stderr, then exits with code 1.
func RestoreOnPanic(w io.Writer) {
	r := recover()
	if r == nil {
		return
	}
	reportPanic(w, os.Stderr, r, debug.Stack())
	os.Exit(1)
}

func reportPanic(w, errOut io.Writer, r any, stack []byte) {
	// Best-effort: the output may be the thing that failed.
	_, _ = io.WriteString(w, "\n")
	fmt.Fprintf(errOut, "panic: %v\n\n%s\n", r, stack)
}
