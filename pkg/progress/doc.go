// ABOUTME: Package documentation for the progress indicators
// ABOUTME: Describes the show/update/finish lifecycle and the single-writer constraint

// Package progress draws live progress indicators on a single terminal
// line: a bar, a percentage counter and a spinner. Each indicator has an
// optional label in front and an optional trailing label behind the
// glyphs.
//
// # Usage
//
//	bar, err := progress.NewBarWith("downloading", "linux.tar.gz", 2560, 20)
//	if err != nil {
//	    return err
//	}
//	bar.Show()
//	for n := range chunks {
//	    bar.Update(bar.Value() + n)
//	}
//	bar.Finish()
//
// Update may be called as often as the caller likes: the value is tracked
// on every call, but the line is redrawn at most four times per second
// and only when the visible glyphs change.
//
// # Terminals
//
// When TERM is set to anything other than "dumb", redraws use ANSI cursor
// movement and erase sequences. Otherwise they fall back to backspaces
// and space padding, which every terminal understands. Both paths leave
// the same characters on screen.
//
// # Concurrency
//
// Indicators are not safe for concurrent use. Exactly one indicator may
// be live on an output stream at a time, and nothing else may write to
// that stream between Show and Finish: the indicator tracks the cursor
// position itself and interleaved output corrupts the line. Call Hide
// before printing something else, then Show again.
//
// When the work happens on other goroutines, hand the indicator to a
// Ticker. It redraws on its own goroutine while workers report progress
// through Set or Add, and Stop finishes the line before returning:
//
//	tk := progress.Start(ctx, bar, 0)
//	for n := range chunks {
//	    tk.Add(n)
//	}
//	if err := tk.Stop(); err != nil {
//	    return err
//	}
package progress
