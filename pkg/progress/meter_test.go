// ABOUTME: Tests for the shared meter: capability detection, rate limiting and cursor primitives
// ABOUTME: Also covers sticky write errors and flushing of buffered outputs

package progress

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mauromedda/termprogress/pkg/tui/terminal"
)

func TestDetectANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		set   bool
		want  bool
	}{
		{name: "unset", set: false, want: false},
		{name: "dumb", value: "dumb", set: true, want: false},
		{name: "xterm", value: "xterm-256color", set: true, want: true},
		{name: "present but empty", value: "", set: true, want: true},
		{name: "case sensitive", value: "DUMB", set: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lookup := func(key string) (string, bool) {
				if key != "TERM" {
					t.Errorf("lookup(%q), want TERM", key)
				}
				return tt.value, tt.set
			}
			if got := DetectANSI(lookup); got != tt.want {
				t.Errorf("DetectANSI() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewMeter_ReadsTERMPerConstruction(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if NewBar().m.ansi {
		t.Error("TERM=dumb: expected fallback path")
	}

	t.Setenv("TERM", "xterm")
	if !NewPercent().m.ansi {
		t.Error("TERM=xterm: expected ANSI path")
	}

	os.Unsetenv("TERM")
	if NewSpinner().m.ansi {
		t.Error("TERM unset: expected fallback path")
	}

	if !NewSpinner(WithANSI(true)).m.ansi {
		t.Error("WithANSI(true) should override detection")
	}
}

func TestMeter_ShouldRedraw(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := newMeter([]Option{WithClock(clock.Now), WithOutput(&bytes.Buffer{})})
	start := m.lastRedraw

	clock.Advance(100 * time.Millisecond)
	if m.shouldRedraw() {
		t.Fatal("100ms after last redraw: want false")
	}
	if !m.lastRedraw.Equal(start) {
		t.Fatal("a refused redraw must not move the timestamp")
	}

	clock.Advance(150 * time.Millisecond)
	if !m.shouldRedraw() {
		t.Fatal("250ms after last redraw: want true")
	}

	clock.Advance(249 * time.Millisecond)
	if m.shouldRedraw() {
		t.Fatal("249ms after last redraw: want false")
	}

	clock.Advance(time.Millisecond)
	if !m.shouldRedraw() {
		t.Fatal("250ms after last redraw: want true")
	}
}

func TestMeter_Rate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rate float64
		want time.Duration
	}{
		{name: "default", rate: DefaultRate, want: 250 * time.Millisecond},
		{name: "ten fps", rate: 10, want: 100 * time.Millisecond},
		{name: "zero keeps default", rate: 0, want: 250 * time.Millisecond},
		{name: "negative keeps default", rate: -3, want: 250 * time.Millisecond},
		{name: "tiny rate floors at MinRate", rate: 1e-12, want: 10 * time.Second},
		{name: "smallest non-zero float", rate: math.SmallestNonzeroFloat64, want: 10 * time.Second},
		{name: "MinRate", rate: MinRate, want: 10 * time.Second},
		{name: "huge rate redraws every time", rate: 1e18, want: 0},
		{name: "NaN keeps default", rate: math.NaN(), want: 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newMeter([]Option{WithRate(tt.rate), WithOutput(&bytes.Buffer{})})
			if m.interval != tt.want {
				t.Errorf("interval = %v, want %v", m.interval, tt.want)
			}
		})
	}
}

func TestMeter_BackTrailingLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ansi     bool
		trailing string
		want     string
	}{
		{name: "ansi", ansi: true, trailing: "linux.tar.gz", want: "\x1b[13D"},
		{name: "fallback", ansi: false, trailing: "done", want: "\b\b\b\b\b"},
		{name: "wide runes count cells", ansi: true, trailing: "完成", want: "\x1b[5D"},
		{name: "empty", ansi: true, trailing: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newMeter([]Option{WithANSI(tt.ansi), WithOutput(&bytes.Buffer{})})
			m.shown.trailing = tt.trailing

			var b strings.Builder
			m.backTrailingLabel(&b)
			if got := b.String(); got != tt.want {
				t.Errorf("backTrailingLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMeter_EraseTrailingLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ansi bool
		want string
	}{
		{name: "ansi", ansi: true, want: "\x1b[5D\x1b[K"},
		{name: "fallback", ansi: false, want: "\b\b\b\b\b     \b\b\b\b\b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vt := terminal.NewVirtualTerminal(80, 24)
			_, _ = vt.Write([]byte("label done "))

			m := newMeter([]Option{WithANSI(tt.ansi), WithOutput(vt)})
			m.shown.trailing = "done"

			var b strings.Builder
			m.eraseTrailingLabel(&b)
			if got := b.String(); got != tt.want {
				t.Errorf("eraseTrailingLabel() = %q, want %q", got, tt.want)
			}
			if m.shown.trailing != "" {
				t.Errorf("shown trailing = %q, want empty after erase", m.shown.trailing)
			}

			_, _ = vt.Write([]byte(b.String()))
			if got := vt.Line(0); got != "label" {
				t.Errorf("screen = %q, want %q", got, "label")
			}
			if _, col := vt.Cursor(); col != 6 {
				t.Errorf("cursor column = %d, want 6 (where the label began)", col)
			}
		})
	}
}

func TestMeter_EraseTrailingLabelEmpty(t *testing.T) {
	t.Parallel()

	m := newMeter([]Option{WithOutput(&bytes.Buffer{})})
	var b strings.Builder
	m.eraseTrailingLabel(&b)
	if b.Len() != 0 {
		t.Errorf("eraseTrailingLabel() with nothing drawn = %q, want empty", b.String())
	}
}

type failingWriter struct {
	calls int
	err   error
}

func (w *failingWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, w.err
}

func TestMeter_WriteErrorIsSticky(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken pipe")
	w := &failingWriter{err: errBroken}
	bar, err := NewBarWith("copying", "", 10, 10, WithOutput(w), WithANSI(false))
	if err != nil {
		t.Fatal(err)
	}

	bar.Show()
	bar.Update(5)
	bar.Finish()

	if !errors.Is(bar.Err(), errBroken) {
		t.Fatalf("Err() = %v, want wrapped %v", bar.Err(), errBroken)
	}
	if w.calls != 1 {
		t.Errorf("writer called %d times, want 1 (output stops after the first failure)", w.calls)
	}
	if bar.Value() != 5 {
		t.Errorf("Value() = %d, want 5: value tracking continues after write failure", bar.Value())
	}
}

func TestMeter_FlushesBufferedOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := bufio.NewWriterSize(&buf, 4096)
	p := NewPercentWith("processing", "", 100, WithOutput(w), WithANSI(false))

	p.Show()

	if got := buf.String(); got != "processing   0% " {
		t.Errorf("underlying buffer = %q, want the line flushed immediately", got)
	}
	if p.Err() != nil {
		t.Errorf("Err() = %v, want nil", p.Err())
	}
}
