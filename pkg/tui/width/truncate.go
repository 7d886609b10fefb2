// ABOUTME: Cell-width truncation for labels that must fit on one terminal line
// ABOUTME: Keeps escape sequences intact and marks the cut with an ellipsis

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// TruncateToWidth shortens s to at most maxWidth cells. When s has to be
// cut, the last cell becomes an ellipsis; styled input gets an SGR reset
// before the ellipsis so colour does not bleed past the cut.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return ellipsis
	}

	styled := strings.ContainsRune(s, '\x1b')
	target := maxWidth - 1

	var b strings.Builder
	col := 0
	for i := 0; i < len(s) && col < target; {
		if s[i] == '\x1b' {
			end := SequenceEnd(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		cw := clusterWidth(cluster)
		if col+cw > target {
			break
		}
		b.WriteString(cluster)
		col += cw
		i += len(s[i:]) - len(rest)
	}
	if styled {
		b.WriteString("\x1b[0m")
	}
	b.WriteString(ellipsis)
	return b.String()
}
