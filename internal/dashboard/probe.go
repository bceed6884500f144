package dashboard

import (
	"context"
	"time"
)

// Run probes remote liveness immediately and then every probe interval
// until ctx is done. In-flight loads are cancelled when Run returns.
func (c *Controller) Run(ctx context.Context) error {
	defer c.cancel()

	c.CheckHealth(ctx)

	ticker := time.NewTicker(c.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.CheckHealth(ctx)
		}
	}
}

// CheckHealth runs a single liveness probe. It never triggers loads.
func (c *Controller) CheckHealth(ctx context.Context) {
	status := ProbeOnline
	if err := c.remote.Health.Health(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Debug("Dashboard: health probe failed",
			"error", err.Error())
		status = ProbeOffline
	}

	c.mu.Lock()
	previous := c.state.probe
	c.state.probe = status
	c.mu.Unlock()

	if previous != status {
		c.logger.Info("Dashboard: remote status changed",
			"from", previous,
			"to", status)
		c.signal()
	}
}
