package core

import (
	"sync"
	"time"
)

// pacer enforces a minimum gap between outgoing requests. A single
// clock is shared by every request through the client, including
// retry attempts, so bursts never exceed the configured rate.
type pacer struct {
	mu    sync.Mutex
	delay time.Duration
	last  time.Time

	// overridable in tests
	now   func() time.Time
	sleep func(time.Duration)
}

func newPacer(delay time.Duration) *pacer {
	return &pacer{
		delay: delay,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// wait blocks until at least delay has passed since the previous call
// returned, then claims the current slot.
func (p *pacer) wait() {
	if p.delay <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := p.now().Sub(p.last)
	if !p.last.IsZero() && elapsed < p.delay {
		p.sleep(p.delay - elapsed)
	}
	p.last = p.now()
}
