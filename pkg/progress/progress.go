// ABOUTME: Indicator interface, construction options and terminal capability detection
// ABOUTME: Shared by the Bar, Percent and Spinner variants

package progress

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"time"
)

const (
	// DefaultRate is the maximum number of redraws per second.
	DefaultRate = 4
	// MinRate is the slowest redraw rate WithRate accepts: one redraw
	// every ten seconds.
	MinRate = 0.1
)

var (
	// ErrBarWidth is returned when a bar is constructed with a width of 2 or less.
	ErrBarWidth = errors.New("bar width must be greater than 2")
	// ErrBarFace is returned when a bar face is not exactly four characters.
	ErrBarFace = errors.New("bar face must be exactly four characters")
)

// Indicator is the capability set shared by all progress indicators.
type Indicator interface {
	fmt.Stringer

	Value() int
	MaxValue() int

	SetLabel(label string)
	SetTrailingLabel(label string)
	SetValue(value int)
	SetMaxValue(value int)

	// Show draws the full line. Call it once before the first Update.
	Show()
	// Hide erases the line and returns the cursor to column 0.
	Hide()
	// Update sets the value and redraws if needed and permitted.
	Update(value int)
	// Finish draws the final state and ends the line.
	Finish()

	// Err returns the first error hit while writing output.
	Err() error
}

var (
	_ Indicator = (*Bar)(nil)
	_ Indicator = (*Percent)(nil)
	_ Indicator = (*Spinner)(nil)
)

// Option configures an indicator.
type Option func(*options)

type options struct {
	out        io.Writer
	ansi       *bool
	now        func() time.Time
	rate       float64
	face       string
	format     func(float64) string
	startValue int
}

// WithOutput sets the stream the indicator draws on. Defaults to
// os.Stdout. Writers with a Flush() error method are flushed after every
// write.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithANSI forces the capability path (true) or the backspace fallback
// (false) instead of inspecting TERM.
func WithANSI(enabled bool) Option {
	return func(o *options) {
		o.ansi = &enabled
	}
}

// WithClock replaces time.Now as the rate limiter's clock. The clock must
// be monotonic.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithRate sets the maximum redraws per second. Non-positive values keep
// DefaultRate; positive values below MinRate are raised to MinRate.
func WithRate(fps float64) Option {
	return func(o *options) {
		if fps > 0 {
			o.rate = max(fps, MinRate)
		}
	}
}

// WithFace sets the four characters a Bar is drawn with: left bracket,
// empty cell, filled cell, right bracket. The default is "| =|". Other
// indicators ignore it.
func WithFace(face string) Option {
	return func(o *options) {
		o.face = face
	}
}

// WithFormatter sets how the value is shown. A Bar appends
// format(value) after its right bracket; a Percent shows
// format(percentage) followed by "%" in place of the whole-number
// counter, so "%.1f" style formatters give one decimal. Spinners ignore it.
func WithFormatter(format func(value float64) string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithStartValue sets the initial value of a Bar or Percent. It is
// clamped to the maximum like any other value.
func WithStartValue(value int) Option {
	return func(o *options) {
		o.startValue = value
	}
}

// DetectANSI reports whether the terminal described by the environment
// understands ANSI cursor sequences. An unset TERM or TERM=dumb selects
// the fallback path; any other value, empty included, enables ANSI.
func DetectANSI(lookupEnv func(key string) (string, bool)) bool {
	term, ok := lookupEnv("TERM")
	return ok && term != "dumb"
}

// clampValue keeps value in [0, maxValue].
func clampValue(value, maxValue int) int {
	if value < 0 {
		return 0
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

// scaleRound returns round(scale*value/maxValue), rounding halves up, for
// 0 <= value <= maxValue and maxValue > 0. The product is formed in 128
// bits so it is exact for every int input; the result is at most scale.
func scaleRound(value, maxValue, scale int) int {
	scale = max(scale, 0)
	value = min(max(value, 0), maxValue)
	hi, lo := bits.Mul64(2*uint64(scale), uint64(value))
	lo, carry := bits.Add64(lo, uint64(maxValue), 0)
	hi += carry
	q, _ := bits.Div64(hi, lo, 2*uint64(maxValue))
	return min(int(q), scale)
}
