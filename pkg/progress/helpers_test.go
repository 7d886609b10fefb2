// ABOUTME: Shared test fixtures: a controllable clock and a write-counting virtual terminal
// ABOUTME: Every screen-touching operation performs exactly one write, so writes count redraws

package progress

import (
	"time"

	"github.com/mauromedda/termprogress/pkg/tui/terminal"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type countingTerminal struct {
	*terminal.VirtualTerminal
	writes int
}

func (c *countingTerminal) Write(p []byte) (int, error) {
	c.writes++
	return c.VirtualTerminal.Write(p)
}

type harness struct {
	term  *countingTerminal
	clock *fakeClock
}

func newHarness() *harness {
	return &harness{
		term:  &countingTerminal{VirtualTerminal: terminal.NewVirtualTerminal(80, 24)},
		clock: newFakeClock(),
	}
}

func (h *harness) options(ansi bool) []Option {
	return []Option{WithOutput(h.term), WithANSI(ansi), WithClock(h.clock.Now)}
}

var bothPaths = []struct {
	name string
	ansi bool
}{
	{name: "ansi", ansi: true},
	{name: "fallback", ansi: false},
}
