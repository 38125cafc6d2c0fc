package engine

import (
	"context"
	"time"
)

// RunHeadless ticks the engine at the given interval until the context is
// cancelled or the engine is closed.
func (e *Engine) RunHeadless(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if e.bus.Closed() {
				return
			}
			dt := now.Sub(lastTime)
			lastTime = now
			e.Tick(dt)
		}
	}
}
