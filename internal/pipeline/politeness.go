package pipeline

import (
	"context"
	"time"
)

// pauseController abstracts how the driver backs off between candidates.
type pauseController interface {
	Pause(ctx context.Context, delay time.Duration)
}

// timerPauseController waits on a timer, returning early on cancellation.
// The delay is a politeness measure toward the remote side, not a
// correctness mechanism.
type timerPauseController struct{}

func (p *timerPauseController) Pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
