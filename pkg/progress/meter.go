// ABOUTME: Shared indicator state: labels, counters, rate limiter and cursor control
// ABOUTME: Tracks what is on screen so redraws and erases cover exactly the drawn cells

package progress

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mauromedda/termprogress/internal/log"
	"github.com/mauromedda/termprogress/pkg/tui/width"
)

const eraseToEOL = "\x1b[K"

type flusher interface {
	Flush() error
}

// screen records what the indicator last drew on its line.
type screen struct {
	labelCells int    // label plus separator, 0 without a label
	glyphs     string // bar, percentage or spinner frame
	trailing   string // trailing label as drawn
}

func (s screen) cells() int {
	n := s.labelCells + trailingCells(s.trailing)
	if s.glyphs != "" {
		n += width.VisibleWidth(s.glyphs) + 1
	}
	return n
}

// trailingCells is the width of a trailing label including its separator.
func trailingCells(label string) int {
	if label == "" {
		return 0
	}
	return width.VisibleWidth(label) + 1
}

// meter is the state every indicator embeds by composition.
type meter struct {
	label         string
	trailingLabel string
	value         int
	maxValue      int
	lastRedraw    time.Time
	ansi          bool

	out      io.Writer
	now      func() time.Time
	interval time.Duration
	visible  bool
	shown    screen
	err      error

	// variant settings, interpreted by the indicator that embeds the meter
	face       string
	format     func(float64) string
	startValue int
}

func newMeter(opts []Option) meter {
	cfg := options{rate: DefaultRate}
	for _, o := range opts {
		o(&cfg)
	}

	m := meter{
		out:      cfg.out,
		now:      cfg.now,
		interval: time.Duration(float64(time.Second) / cfg.rate),

		face:       cfg.face,
		format:     cfg.format,
		startValue: cfg.startValue,
	}
	if m.out == nil {
		m.out = os.Stdout
	}
	if m.now == nil {
		m.now = time.Now
	}
	if cfg.ansi != nil {
		m.ansi = *cfg.ansi
	} else {
		m.ansi = DetectANSI(os.LookupEnv)
	}
	m.lastRedraw = m.now()
	return m
}

func (m *meter) setLabel(label string) {
	m.label = label
}

func (m *meter) setTrailingLabel(label string) {
	m.trailingLabel = label
}

// shouldRedraw reports whether enough time has passed since the last
// redraw, and if so restarts the interval.
func (m *meter) shouldRedraw() bool {
	t := m.now()
	if t.Sub(m.lastRedraw) < m.interval {
		return false
	}
	m.lastRedraw = t
	return true
}

// cursorBack moves the cursor n cells to the left.
func (m *meter) cursorBack(b *strings.Builder, n int) {
	if n <= 0 {
		return
	}
	if m.ansi {
		b.WriteString("\x1b[")
		b.WriteString(strconv.Itoa(n))
		b.WriteByte('D')
		return
	}
	b.WriteString(strings.Repeat("\b", n))
}

// eraseForward blanks n cells starting at the cursor, which stays put.
func (m *meter) eraseForward(b *strings.Builder, n int) {
	if n <= 0 {
		return
	}
	if m.ansi {
		b.WriteString(eraseToEOL)
		return
	}
	b.WriteString(strings.Repeat(" ", n))
	m.cursorBack(b, n)
}

// backTrailingLabel moves the cursor to where the drawn trailing label begins.
func (m *meter) backTrailingLabel(b *strings.Builder) {
	m.cursorBack(b, trailingCells(m.shown.trailing))
}

// eraseTrailingLabel blanks the drawn trailing label and leaves the cursor
// where it began.
func (m *meter) eraseTrailingLabel(b *strings.Builder) {
	n := trailingCells(m.shown.trailing)
	if n == 0 {
		return
	}
	m.cursorBack(b, n)
	m.eraseForward(b, n)
	m.shown.trailing = ""
}

// eraseGlyphs blanks the drawn glyphs. The trailing label must already be
// erased; the cursor ends where the glyphs began.
func (m *meter) eraseGlyphs(b *strings.Builder) {
	if m.shown.glyphs == "" {
		return
	}
	n := width.VisibleWidth(m.shown.glyphs) + 1
	m.cursorBack(b, n)
	m.eraseForward(b, n)
	m.shown.glyphs = ""
}

// line renders the full line for the given glyphs without writing it.
func (m *meter) line(glyphs string) string {
	var b strings.Builder
	if m.label != "" {
		b.WriteString(m.label)
		b.WriteByte(' ')
	}
	b.WriteString(glyphs)
	b.WriteByte(' ')
	if m.trailingLabel != "" {
		b.WriteString(m.trailingLabel)
		b.WriteByte(' ')
	}
	return b.String()
}

// drawLine appends the full line, drawn from the current cursor position.
func (m *meter) drawLine(b *strings.Builder, glyphs string) {
	m.shown = screen{glyphs: glyphs, trailing: m.trailingLabel}
	if m.label != "" {
		m.shown.labelCells = width.VisibleWidth(m.label) + 1
	}
	m.visible = true
	m.lastRedraw = m.now()
	b.WriteString(m.line(glyphs))
}

// show writes the full line.
func (m *meter) show(glyphs string) {
	var b strings.Builder
	m.drawLine(&b, glyphs)
	m.write(b.String())
}

// drawInPlace appends the sequence that replaces the drawn glyphs and
// trailing label, blanking whatever a longer previous drawing leaves
// behind. The label is left untouched.
func (m *meter) drawInPlace(b *strings.Builder, glyphs string) {
	drawn := trailingCells(m.shown.trailing)
	m.backTrailingLabel(b)
	if m.shown.glyphs != "" {
		n := width.VisibleWidth(m.shown.glyphs) + 1
		m.cursorBack(b, n)
		drawn += n
	}

	b.WriteString(glyphs)
	b.WriteByte(' ')
	if m.trailingLabel != "" {
		b.WriteString(m.trailingLabel)
		b.WriteByte(' ')
	}
	if n := width.VisibleWidth(glyphs) + 1 + trailingCells(m.trailingLabel); drawn > n {
		m.eraseForward(b, drawn-n)
	}

	m.shown.glyphs = glyphs
	m.shown.trailing = m.trailingLabel
}

// hide erases the whole line using the width actually drawn, not the
// width the current labels would take.
func (m *meter) hide() {
	var b strings.Builder
	if m.ansi {
		b.WriteString("\r")
		b.WriteString(eraseToEOL)
	} else {
		b.WriteByte('\r')
		b.WriteString(strings.Repeat(" ", m.shown.cells()))
		b.WriteByte('\r')
	}
	m.shown = screen{}
	m.visible = false
	m.write(b.String())
}

// endLine terminates the line with tail and forgets the drawn state.
func (m *meter) endLine(b *strings.Builder, tail string) {
	b.WriteString(tail)
	b.WriteByte('\n')
	m.shown = screen{}
	m.visible = false
	m.write(b.String())
}

// write emits s in a single write and flushes. After the first failure
// all further output is dropped.
func (m *meter) write(s string) {
	if m.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(m.out, s); err != nil {
		m.fail(err)
		return
	}
	if f, ok := m.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			m.fail(err)
		}
	}
}

func (m *meter) fail(err error) {
	m.err = fmt.Errorf("writing progress output: %w", err)
	log.Debug("progress: %v", m.err)
}
