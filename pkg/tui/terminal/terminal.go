// ABOUTME: Defines the Terminal interface progress indicators draw on
// ABOUTME: A byte sink plus a size query, implemented by the real stdout and a virtual screen

package terminal

import "io"

// Terminal is an output stream with a known width. Progress indicators
// only ever write to it; no input or raw mode is involved.
type Terminal interface {
	io.Writer
	Size() (width, height int, err error)
}
