// ABOUTME: Runs the bar, percentage and spinner demonstrations in sequence
// ABOUTME: Cancellation finishes the active indicator and skips the rest

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mauromedda/termprogress/internal/config"
	"github.com/mauromedda/termprogress/internal/log"
	"github.com/mauromedda/termprogress/pkg/progress"
)

type sleepFunc func(ctx context.Context, d time.Duration) error

// demo holds what every indicator run shares.
type demo struct {
	out    io.Writer
	script *config.Script
	opts   []progress.Option
	styles labelStyles
	cols   int
	sleep  sleepFunc
}

// run shows each named indicator in turn. It returns ctx.Err() when
// cancelled, after finishing the indicator on screen.
func (d *demo) run(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug("demo: running %s", name)

		var err error
		switch name {
		case "bar":
			err = d.runBar(ctx)
		case "percent":
			err = d.runPercent(ctx)
		case "spinner":
			err = d.runSpinner(ctx)
		default:
			err = fmt.Errorf("unknown indicator %q", name)
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (d *demo) runBar(ctx context.Context) error {
	s := d.script.Bar
	barWidth := fitBarWidth(d.cols, s.Width, s.Label, s.TrailingLabel)
	label, trailing := fitLabels(d.cols, barWidth+2, s.Label, s.TrailingLabel)
	label, trailing = d.styles.apply(label, trailing)

	bar, err := progress.NewBarWith(label, trailing, s.Max, barWidth, d.opts...)
	if err != nil {
		return fmt.Errorf("creating bar: %w", err)
	}

	bar.Show()
	completed := d.loop(ctx, func() { bar.Update(bar.Value() + s.Step) })
	if completed {
		bar.SetValue(bar.MaxValue())
	}
	bar.Finish()
	return d.check("bar", bar)
}

func (d *demo) runPercent(ctx context.Context) error {
	s := d.script.Percent
	label, trailing := fitLabels(d.cols, 4, s.Label, s.TrailingLabel)
	label, trailing = d.styles.apply(label, trailing)

	p := progress.NewPercentWith(label, trailing, s.Max, d.opts...)

	p.Show()
	completed := d.loop(ctx, func() { p.Update(p.Value() + s.Step) })
	if completed {
		p.SetValue(p.MaxValue())
	}
	p.Hide()
	p.Finish()
	if err := d.check("percent", p); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(d.out); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	return nil
}

func (d *demo) runSpinner(ctx context.Context) error {
	s := d.script.Spinner
	label, trailing := fitLabels(d.cols, 1, s.Label, s.TrailingLabel)
	label, trailing = d.styles.apply(label, trailing)

	sp := progress.NewSpinnerWith(label, trailing, d.opts...)

	// The spinner animates on its own goroutine while the steps elapse.
	tk := progress.Start(ctx, sp, d.tickInterval())
	d.loop(ctx, func() {})
	if err := tk.Stop(); err != nil {
		return fmt.Errorf("spinner: %w", err)
	}
	return nil
}

// tickInterval is one redraw period at the configured rate.
func (d *demo) tickInterval() time.Duration {
	if d.script.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / max(d.script.Rate, progress.MinRate))
}

// loop calls step once per configured step, pausing between calls. It
// reports whether all steps ran.
func (d *demo) loop(ctx context.Context, step func()) bool {
	for range d.script.Steps {
		step()
		if err := d.sleep(ctx, d.script.Delay); err != nil {
			log.Debug("demo: interrupted: %v", err)
			return false
		}
	}
	return true
}

func (d *demo) check(name string, ind progress.Indicator) error {
	if err := ind.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// sleepContext pauses for dur or until ctx is done.
func sleepContext(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(dur)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
