// ABOUTME: Spinner indicator cycling through | / - \ on every permitted tick
// ABOUTME: Has no notion of magnitude; value is the animation frame index

package progress

import "strings"

var spinnerFrames = [...]string{"|", "/", "-", `\`}

// Spinner shows that work is ongoing without saying how much is left.
type Spinner struct {
	m meter
}

// NewSpinner returns a spinner with no labels.
func NewSpinner(opts ...Option) *Spinner {
	return &Spinner{m: newMeter(opts)}
}

// NewSpinnerWith returns a spinner with labels.
func NewSpinnerWith(label, trailingLabel string, opts ...Option) *Spinner {
	s := &Spinner{m: newMeter(opts)}
	s.m.setLabel(label)
	s.m.setTrailingLabel(trailingLabel)
	return s
}

// Value returns the current animation frame, in [0, 4).
func (s *Spinner) Value() int { return s.m.value }

// MaxValue always returns 0.
func (s *Spinner) MaxValue() int { return s.m.maxValue }

// SetLabel sets the text in front of the spinner. It shows on the next Show.
func (s *Spinner) SetLabel(label string) { s.m.setLabel(label) }

// SetTrailingLabel sets the text behind the spinner. It shows on the next redraw.
func (s *Spinner) SetTrailingLabel(label string) { s.m.setTrailingLabel(label) }

// SetValue rewinds the animation to its first frame; the argument is ignored.
func (s *Spinner) SetValue(int) { s.m.value = 0 }

// SetMaxValue keeps the maximum at 0; spinners have no magnitude.
func (s *Spinner) SetMaxValue(int) { s.m.maxValue = 0 }

// Err returns the first error hit while writing output.
func (s *Spinner) Err() error { return s.m.err }

// String returns the full line Show would draw.
func (s *Spinner) String() string {
	return s.m.line(s.frame())
}

// Show draws the label, the current frame and the trailing label.
func (s *Spinner) Show() {
	s.m.show(s.frame())
}

// Hide erases the line.
func (s *Spinner) Hide() {
	s.m.hide()
}

// Update advances the animation by one frame if the last redraw is old
// enough. The argument is accepted for uniformity with the other
// indicators and ignored. A hidden spinner is shown again.
func (s *Spinner) Update(value int) {
	if !s.m.visible {
		s.Show()
		return
	}
	if !s.m.shouldRedraw() {
		return
	}
	s.updateValue(value)
	var b strings.Builder
	s.renderInPlace(&b)
	s.m.write(b.String())
}

// Finish removes the spinner and its trailing label from the redraw
// region and prints the trailing label as plain text, ending the line.
func (s *Spinner) Finish() {
	var b strings.Builder
	if !s.m.visible {
		s.m.drawLine(&b, s.frame())
	}
	s.m.eraseTrailingLabel(&b)
	s.m.eraseGlyphs(&b)
	s.m.endLine(&b, s.m.trailingLabel)
}

func (s *Spinner) updateValue(int) {
	s.m.value = (s.m.value + 1) % len(spinnerFrames)
}

func (s *Spinner) frame() string {
	return spinnerFrames[s.m.value%len(spinnerFrames)]
}

// renderInPlace backs up over the trailing label and the two cells of
// frame and separator, then draws both again.
func (s *Spinner) renderInPlace(b *strings.Builder) {
	s.m.drawInPlace(b, s.frame())
}
