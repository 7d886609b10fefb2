// ABOUTME: Bar indicator drawing |====    | with a fixed number of cells and a configurable face
// ABOUTME: Redraws only when the discretized glyphs change and the rate limiter allows

package progress

import (
	"fmt"
	"strings"

	"github.com/mauromedda/termprogress/internal/log"
)

const (
	// DefaultBarWidth is the number of cells between the brackets of a bar
	// built with NewBar.
	DefaultBarWidth = 20
	// DefaultBarFace draws bars as |====    |.
	DefaultBarFace = "| =|"
)

// barFace holds the four characters of a bar.
type barFace struct {
	left, empty, fill, right string
}

var defaultFace = barFace{left: "|", empty: " ", fill: "=", right: "|"}

func parseFace(face string) (barFace, error) {
	if face == "" {
		return defaultFace, nil
	}
	r := []rune(face)
	if len(r) != 4 {
		return barFace{}, fmt.Errorf("%w: got %q", ErrBarFace, face)
	}
	return barFace{left: string(r[0]), empty: string(r[1]), fill: string(r[2]), right: string(r[3])}, nil
}

// Bar shows progress as a row of filled cells between two brackets.
type Bar struct {
	m     meter
	width int
	face  barFace
}

// NewBar returns a bar with no labels, zero values and DefaultBarWidth.
// Set the maximum value before showing it. An invalid WithFace falls
// back to DefaultBarFace.
func NewBar(opts ...Option) *Bar {
	b := &Bar{m: newMeter(opts), width: DefaultBarWidth}
	face, err := parseFace(b.m.face)
	if err != nil {
		log.Debug("progress: %v; using %q", err, DefaultBarFace)
		face = defaultFace
	}
	b.face = face
	b.SetValue(b.m.startValue)
	return b
}

// NewBarWith returns a bar with labels, a maximum value and barWidth
// cells. barWidth must be greater than 2; narrower bars are rejected with
// ErrBarWidth, and a face that is not four characters with ErrBarFace.
func NewBarWith(label, trailingLabel string, maxValue, barWidth int, opts ...Option) (*Bar, error) {
	if barWidth <= 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBarWidth, barWidth)
	}
	b := &Bar{m: newMeter(opts), width: barWidth}
	face, err := parseFace(b.m.face)
	if err != nil {
		return nil, err
	}
	b.face = face
	b.m.setLabel(label)
	b.m.setTrailingLabel(trailingLabel)
	b.SetMaxValue(maxValue)
	b.SetValue(b.m.startValue)
	return b, nil
}

// BarGlyphs renders value out of maxValue as a bar of barWidth cells:
// round(barWidth*value/maxValue) '=' cells, padded with spaces and
// enclosed in '|'. value is clamped to [0, maxValue]; a zero maxValue
// yields an empty bar.
func BarGlyphs(value, maxValue, barWidth int) string {
	return defaultFace.render(barUnits(value, maxValue, barWidth), max(barWidth, 0))
}

func barUnits(value, maxValue, barWidth int) int {
	if maxValue <= 0 || barWidth <= 0 {
		return 0
	}
	return scaleRound(value, maxValue, barWidth)
}

func (f barFace) render(units, barWidth int) string {
	return f.left + strings.Repeat(f.fill, units) + strings.Repeat(f.empty, barWidth-units) + f.right
}

// Width returns the number of cells between the brackets.
func (b *Bar) Width() int { return b.width }

// Value returns the current value.
func (b *Bar) Value() int { return b.m.value }

// MaxValue returns the value at which the bar is full.
func (b *Bar) MaxValue() int { return b.m.maxValue }

// SetLabel sets the text in front of the bar. It shows on the next Show.
func (b *Bar) SetLabel(label string) { b.m.setLabel(label) }

// SetTrailingLabel sets the text behind the bar. It shows on the next redraw.
func (b *Bar) SetTrailingLabel(label string) { b.m.setTrailingLabel(label) }

// SetValue sets the value without redrawing.
func (b *Bar) SetValue(value int) {
	b.m.value = clampValue(value, b.m.maxValue)
}

// SetMaxValue sets the value at which the bar is full, without redrawing.
func (b *Bar) SetMaxValue(value int) {
	b.m.maxValue = max(value, 0)
	b.m.value = clampValue(b.m.value, b.m.maxValue)
}

// Err returns the first error hit while writing output.
func (b *Bar) Err() error { return b.m.err }

// String returns the full line Show would draw.
func (b *Bar) String() string {
	return b.m.line(b.calcBarGlyphs())
}

// Show draws the label, the bar and the trailing label.
func (b *Bar) Show() {
	b.m.show(b.calcBarGlyphs())
}

// Hide erases the line.
func (b *Bar) Hide() {
	b.m.hide()
}

// Update sets the value. The bar is redrawn only if that changes its
// glyphs and the last redraw is old enough. A hidden bar is shown again.
func (b *Bar) Update(value int) {
	b.updateValue(value)
	if !b.m.visible {
		b.Show()
		return
	}
	glyphs := b.calcBarGlyphs()
	if glyphs == b.m.shown.glyphs {
		return
	}
	if !b.m.shouldRedraw() {
		return
	}
	var sb strings.Builder
	b.renderInPlace(&sb, glyphs)
	b.m.write(sb.String())
}

// Finish draws the bar for the current value, regardless of the rate
// limit, and ends the line.
func (b *Bar) Finish() {
	var sb strings.Builder
	glyphs := b.calcBarGlyphs()
	if b.m.visible {
		b.renderInPlace(&sb, glyphs)
	} else {
		b.m.drawLine(&sb, glyphs)
	}
	b.m.endLine(&sb, "")
}

func (b *Bar) updateValue(value int) {
	b.m.value = clampValue(value, b.m.maxValue)
}

func (b *Bar) calcBarGlyphs() string {
	g := b.face.render(barUnits(b.m.value, b.m.maxValue, b.width), b.width)
	if b.m.format != nil {
		g += " " + b.m.format(float64(b.m.value))
	}
	return g
}

// renderInPlace backs up over the trailing label and the drawn bar and
// separator, then draws both again.
func (b *Bar) renderInPlace(sb *strings.Builder, glyphs string) {
	b.m.drawInPlace(sb, glyphs)
}
