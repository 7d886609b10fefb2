// ABOUTME: Tests for the demo runner on a virtual terminal
// ABOUTME: Covers the full default run, indicator selection, cancellation and write failures

package main

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/mauromedda/termprogress/internal/config"
	"github.com/mauromedda/termprogress/pkg/tui/terminal"
	"github.com/mauromedda/termprogress/pkg/tui/width"
)

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func newTestDemo(t *testing.T, ansi string, cols int) (*demo, *terminal.VirtualTerminal) {
	t.Helper()

	vt := terminal.NewVirtualTerminal(80, 24)
	d := newDemo(vt, config.Default(), cliArgs{ansi: ansi}, cols)
	d.sleep = noSleep
	return d, vt
}

func TestDemo_FullRun(t *testing.T) {
	t.Parallel()

	want := []string{
		"downloading |====================| linux.tar.gz",
		"processing 100% done",
		"",
		"working (please wait)",
		"",
	}

	for _, mode := range []string{"on", "off"} {
		t.Run(mode, func(t *testing.T) {
			t.Parallel()
			d, vt := newTestDemo(t, mode, 0)

			if err := d.run(context.Background(), indicatorNames); err != nil {
				t.Fatal(err)
			}
			if got := vt.Lines(); !slices.Equal(got, want) {
				t.Errorf("screen:\n%q\nwant:\n%q", got, want)
			}
		})
	}
}

func TestDemo_SelectedOnly(t *testing.T) {
	t.Parallel()

	d, vt := newTestDemo(t, "off", 0)
	if err := d.run(context.Background(), []string{"spinner"}); err != nil {
		t.Fatal(err)
	}
	if got := vt.Lines(); !slices.Equal(got, []string{"working (please wait)", ""}) {
		t.Errorf("screen = %q", got)
	}
}

func TestDemo_FewStepsFinishesAtMax(t *testing.T) {
	t.Parallel()

	d, vt := newTestDemo(t, "on", 0)
	d.script.Steps = 3

	if err := d.run(context.Background(), []string{"bar"}); err != nil {
		t.Fatal(err)
	}
	if got := vt.Line(0); got != "downloading |====================| linux.tar.gz" {
		t.Errorf("screen = %q", got)
	}
}

func TestDemo_Cancelled(t *testing.T) {
	t.Parallel()

	d, vt := newTestDemo(t, "off", 0)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	d.sleep = func(ctx context.Context, _ time.Duration) error {
		calls++
		if calls == 50 {
			cancel()
		}
		return ctx.Err()
	}

	err := d.run(ctx, indicatorNames)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("run() = %v, want context.Canceled", err)
	}

	lines := vt.Lines()
	if len(lines) != 2 || lines[1] != "" {
		t.Fatalf("screen = %q, want one finished line", lines)
	}
	// 50 steps of 15 out of 2560: the bar stops part way, not at full.
	if lines[0] != "downloading |======              | linux.tar.gz" {
		t.Errorf("bar = %q", lines[0])
	}
}

func TestDemo_NarrowTerminal(t *testing.T) {
	t.Parallel()

	d, vt := newTestDemo(t, "on", 30)
	if err := d.run(context.Background(), indicatorNames); err != nil {
		t.Fatal(err)
	}
	for i, line := range vt.Lines() {
		if w := width.VisibleWidth(line); w >= 30 {
			t.Errorf("line %d %q is %d cells wide on a 30 column terminal", i, line, w)
		}
	}
}

type brokenTerminal struct{}

func (brokenTerminal) Write([]byte) (int, error) { return 0, errors.New("terminal gone") }
func (brokenTerminal) Size() (int, int, error) { return 80, 24, nil }

func TestDemo_WriteFailure(t *testing.T) {
	t.Parallel()

	d := newDemo(brokenTerminal{}, config.Default(), cliArgs{ansi: "off"}, 0)
	d.sleep = noSleep

	err := d.run(context.Background(), indicatorNames)
	if err == nil {
		t.Fatal("run() succeeded on a broken terminal")
	}
	if got := err.Error(); got != "bar: writing progress output: terminal gone" {
		t.Errorf("error = %q", got)
	}
}

func TestDemo_SpinnerWriteFailure(t *testing.T) {
	t.Parallel()

	d := newDemo(brokenTerminal{}, config.Default(), cliArgs{ansi: "on"}, 0)
	d.sleep = noSleep

	err := d.run(context.Background(), []string{"spinner"})
	if err == nil || err.Error() != "spinner: writing progress output: terminal gone" {
		t.Errorf("run() = %v", err)
	}
}

func TestDemo_TickInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate float64
		want time.Duration
	}{
		{rate: 0, want: 0},
		{rate: 4, want: 250 * time.Millisecond},
		{rate: 20, want: 50 * time.Millisecond},
		{rate: 1e-9, want: 10 * time.Second},
	}

	for _, tt := range tests {
		d, _ := newTestDemo(t, "off", 0)
		d.script.Rate = tt.rate
		if got := d.tickInterval(); got != tt.want {
			t.Errorf("tickInterval() at %v fps = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestLabelStyles(t *testing.T) {
	t.Parallel()

	plain := newLabelStyles(terminal.NewVirtualTerminal(80, 24), false)
	if l, r := plain.apply("a", "b"); l != "a" || r != "b" {
		t.Errorf("disabled styles changed labels: %q, %q", l, r)
	}

	styled := newLabelStyles(terminal.NewVirtualTerminal(80, 24), true)
	l, r := styled.apply("downloading", "")
	if width.StripANSI(l) != "downloading" {
		t.Errorf("styled label text = %q", width.StripANSI(l))
	}
	if r != "" {
		t.Errorf("empty trailing label styled to %q", r)
	}
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepContext() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepContext(cancelled) = %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("sleepContext did not return promptly on cancellation")
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	s := config.Default()
	applyOverrides(s, cliArgs{delay: time.Second, steps: 7})
	if s.Delay != time.Second || s.Steps != 7 {
		t.Errorf("script = %v/%d", s.Delay, s.Steps)
	}

	s = config.Default()
	applyOverrides(s, cliArgs{})
	if s.Delay != 50*time.Millisecond || s.Steps != 100 {
		t.Errorf("zero flags changed the script: %v/%d", s.Delay, s.Steps)
	}
}
