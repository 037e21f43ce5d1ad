package orchestrator

import (
	"context"
	"time"
)

// Debouncer coalesces triggers: C receives one signal after triggers have
// been quiet for the delay.
type Debouncer struct {
	delay   time.Duration
	trigger chan struct{}
	out     chan struct{}
}

// NewDebouncer creates a debouncer. Call Run to start it.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{
		delay:   delay,
		trigger: make(chan struct{}, 1),
		out:     make(chan struct{}, 1),
	}
}

// Trigger restarts the quiet period. It never blocks.
func (d *Debouncer) Trigger() {
	select {
	case d.trigger <- struct{}{}:
	default:
	}
}

// C delivers one signal per settled burst.
func (d *Debouncer) C() <-chan struct{} {
	return d.out
}

// Run processes triggers until ctx is done.
func (d *Debouncer) Run(ctx context.Context) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case <-d.trigger:
			if timer == nil {
				timer = time.NewTimer(d.delay)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d.delay)

		case <-fire:
			timer = nil
			// Drop the signal if the consumer has not taken the last one.
			select {
			case d.out <- struct{}{}:
			default:
			}

		case <-ctx.Done():
			return
		}
	}
}
