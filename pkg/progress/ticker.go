// ABOUTME: Ticker drives an indicator from a background goroutine at a fixed interval
// ABOUTME: Callers publish values atomically; Stop joins the goroutine before returning

package progress

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Ticker redraws an indicator on its own goroutine. Between Start and
// Stop the goroutine is the only user of the indicator; other goroutines
// report progress through Set and Add.
type Ticker struct {
	ind      Indicator
	interval time.Duration
	value    atomic.Int64

	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Start shows ind and updates it every interval until Stop is called or
// ctx is done, then finishes it. A non-positive interval means one tick
// per DefaultRate.
func Start(ctx context.Context, ind Indicator, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second / DefaultRate
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{
		ind:      ind,
		interval: interval,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	t.value.Store(int64(ind.Value()))
	go t.run(ctx)
	return t
}

// Set publishes the value the indicator shows on the next tick.
func (t *Ticker) Set(value int) { t.value.Store(int64(value)) }

// Add moves the published value by delta.
func (t *Ticker) Add(delta int) { t.value.Add(int64(delta)) }

// Stop ends the ticker, waits for the indicator to be finished and
// returns its write error. Calling Stop again returns the same result.
func (t *Ticker) Stop() error {
	t.stopOnce.Do(t.cancel)
	<-t.done
	return t.ind.Err()
}

// Done is closed once the indicator has been finished.
func (t *Ticker) Done() <-chan struct{} { return t.done }

func (t *Ticker) run(ctx context.Context) {
	defer close(t.done)

	t.ind.Show()
	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			t.ind.SetValue(int(t.value.Load()))
			t.ind.Finish()
			return
		case <-tick.C:
			t.ind.Update(int(t.value.Load()))
		}
	}
}
