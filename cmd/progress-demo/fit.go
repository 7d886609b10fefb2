// ABOUTME: Fits an indicator line into the terminal width
// ABOUTME: Narrows the bar first, then truncates the trailing label, then the label

package main

import "github.com/mauromedda/termprogress/pkg/tui/width"

const minBarWidth = 3

// labelCells is the width of a label plus its separator.
func labelCells(s string) int {
	if s == "" {
		return 0
	}
	return width.VisibleWidth(s) + 1
}

// fitBarWidth returns the widest bar, at most barWidth, whose line stays
// below cols cells. It never goes under minBarWidth.
func fitBarWidth(cols, barWidth int, label, trailing string) int {
	if cols <= 0 {
		return barWidth
	}
	// label, brackets, separator, trailing label, and one spare column
	// so the cursor never sits in the autowrap position.
	room := cols - 1 - labelCells(label) - labelCells(trailing) - 3
	return max(min(barWidth, room), minBarWidth)
}

// fitLabels truncates the labels so a line with glyphCells of glyphs stays
// below cols cells. The trailing label gives way first.
func fitLabels(cols, glyphCells int, label, trailing string) (string, string) {
	if cols <= 0 {
		return label, trailing
	}
	room := cols - 1 - (glyphCells + 1)
	over := labelCells(label) + labelCells(trailing) - room
	if over <= 0 {
		return label, trailing
	}

	if tw := width.VisibleWidth(trailing); tw > 0 {
		keep := tw - over
		if keep > 0 {
			return label, width.TruncateToWidth(trailing, keep)
		}
		over = -keep - 1
		trailing = ""
	}
	if over > 0 && label != "" {
		keep := width.VisibleWidth(label) - over
		if keep <= 0 {
			return "", trailing
		}
		label = width.TruncateToWidth(label, keep)
	}
	return label, trailing
}
