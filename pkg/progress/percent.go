// ABOUTME: Percent indicator drawing a right-aligned "NNN%" counter
// ABOUTME: Redraws only when the rounded percentage changes and the rate limiter allows

package progress

import (
	"fmt"
	"strings"
)

// Percent shows progress as a whole-number percentage.
type Percent struct {
	m meter
}

// NewPercent returns a percentage counter with no labels and zero values.
// Set the maximum value before showing it.
func NewPercent(opts ...Option) *Percent {
	p := &Percent{m: newMeter(opts)}
	p.SetValue(p.m.startValue)
	return p
}

// NewPercentWith returns a percentage counter with labels and a maximum value.
func NewPercentWith(label, trailingLabel string, maxValue int, opts ...Option) *Percent {
	p := &Percent{m: newMeter(opts)}
	p.m.setLabel(label)
	p.m.setTrailingLabel(trailingLabel)
	p.SetMaxValue(maxValue)
	p.SetValue(p.m.startValue)
	return p
}

// CalcPercentage returns round(100*value/maxValue) clamped to [0, 100].
// A zero maxValue yields 0.
func CalcPercentage(value, maxValue int) int {
	if maxValue <= 0 {
		return 0
	}
	return scaleRound(value, maxValue, 100)
}

// fractionPercentage returns 100*value/maxValue in [0, 100] for custom
// formatters.
func fractionPercentage(value, maxValue int) float64 {
	if maxValue <= 0 {
		return 0
	}
	v := min(max(value, 0), maxValue)
	return min(100*(float64(v)/float64(maxValue)), 100)
}

// Percentage returns the current percentage.
func (p *Percent) Percentage() int {
	return CalcPercentage(p.m.value, p.m.maxValue)
}

// Value returns the current value.
func (p *Percent) Value() int { return p.m.value }

// MaxValue returns the value that counts as 100%.
func (p *Percent) MaxValue() int { return p.m.maxValue }

// SetLabel sets the text in front of the counter. It shows on the next Show.
func (p *Percent) SetLabel(label string) { p.m.setLabel(label) }

// SetTrailingLabel sets the text behind the counter. It shows on the next redraw.
func (p *Percent) SetTrailingLabel(label string) { p.m.setTrailingLabel(label) }

// SetValue sets the value without redrawing.
func (p *Percent) SetValue(value int) {
	p.m.value = clampValue(value, p.m.maxValue)
}

// SetMaxValue sets the value that counts as 100%, without redrawing.
func (p *Percent) SetMaxValue(value int) {
	p.m.maxValue = max(value, 0)
	p.m.value = clampValue(p.m.value, p.m.maxValue)
}

// Err returns the first error hit while writing output.
func (p *Percent) Err() error { return p.m.err }

// String returns the full line Show would draw.
func (p *Percent) String() string {
	return p.m.line(p.calcGlyphs())
}

// Show draws the label, the percentage and the trailing label.
func (p *Percent) Show() {
	p.m.show(p.calcGlyphs())
}

// Hide erases the line.
func (p *Percent) Hide() {
	p.m.hide()
}

// Update sets the value. The counter is redrawn only if the rounded
// percentage differs from the one on screen and the last redraw is old
// enough. A hidden counter is shown again.
func (p *Percent) Update(value int) {
	p.updateValue(value)
	if !p.m.visible {
		p.Show()
		return
	}
	glyphs := p.calcGlyphs()
	if glyphs == p.m.shown.glyphs {
		return
	}
	if !p.m.shouldRedraw() {
		return
	}
	var sb strings.Builder
	p.renderInPlace(&sb, glyphs)
	p.m.write(sb.String())
}

// Finish draws the percentage for the current value, regardless of the
// rate limit, and ends the line.
func (p *Percent) Finish() {
	var sb strings.Builder
	glyphs := p.calcGlyphs()
	if p.m.visible {
		p.renderInPlace(&sb, glyphs)
	} else {
		p.m.drawLine(&sb, glyphs)
	}
	p.m.endLine(&sb, "")
}

func (p *Percent) updateValue(value int) {
	p.m.value = clampValue(value, p.m.maxValue)
}

func (p *Percent) calcGlyphs() string {
	if p.m.format == nil {
		return fmt.Sprintf("%3d%%", p.Percentage())
	}
	pct := fractionPercentage(p.m.value, p.m.maxValue)
	if pct >= 100 {
		return "100%"
	}
	return p.m.format(pct) + "%"
}

// renderInPlace backs up over the trailing label and the drawn counter and
// separator, then draws both again.
func (p *Percent) renderInPlace(sb *strings.Builder, glyphs string) {
	p.m.drawInPlace(sb, glyphs)
}
