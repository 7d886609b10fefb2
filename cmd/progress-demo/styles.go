// ABOUTME: Lipgloss label styles for the demo indicators
// ABOUTME: Styling is applied after fitting so truncation works on plain text

package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/termprogress/internal/termfix"
)

type labelStyles struct {
	label    lipgloss.Style
	trailing lipgloss.Style
	enabled  bool
}

func newLabelStyles(w io.Writer, enabled bool) labelStyles {
	if !enabled {
		return labelStyles{}
	}
	r := termfix.Renderer(w)
	return labelStyles{
		label:    r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "75"}),
		trailing: r.NewStyle().Faint(true),
		enabled:  true,
	}
}

func (s labelStyles) apply(label, trailing string) (string, string) {
	if !s.enabled {
		return label, trailing
	}
	if label != "" {
		label = s.label.Render(label)
	}
	if trailing != "" {
		trailing = s.trailing.Render(trailing)
	}
	return label, trailing
}
