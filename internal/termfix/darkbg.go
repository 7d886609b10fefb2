// ABOUTME: Lipgloss renderer that never queries the terminal for its background colour
// ABOUTME: An OSC 11 reply arriving mid-line would corrupt an indicator's cursor arithmetic

package termfix

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Renderer returns a lipgloss renderer for w with the background preset to
// dark, so resolving adaptive colours does not send OSC 10/11 queries.
func Renderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetHasDarkBackground(true)
	return r
}
