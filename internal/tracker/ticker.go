package tracker

import (
	"context"
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
)

// DefaultTickInterval is the display refresh period of a running session.
const DefaultTickInterval = time.Second

// Watch calls onTick with the current snapshot and elapsed seconds once per
// interval while the displayed status is start. It returns nil as soon as the
// session is no longer running and ctx.Err() when ctx is cancelled. The
// ticker is owned by the call and stopped on return. Ticks only read state.
func (t *Tracker) Watch(ctx context.Context, interval time.Duration, onTick func(Snapshot, int64)) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	emit := func() bool {
		snap := t.Snapshot()
		if snap.Status != domain.WorkRunning {
			return false
		}
		onTick(snap, snap.ElapsedSeconds(t.clock.Now()))
		return true
	}
	if !emit() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !emit() {
				return nil
			}
		}
	}
}
