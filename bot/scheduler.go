package bot

import (
	"time"
)

// startMonitor runs the announcement monitor on its own ticker until
// shutdown.
func (b *Bot) startMonitor() {
	if b.Monitor == nil {
		b.Logger.Warn("monitor not configured, announcement polling disabled")
		return
	}

	ticker := time.NewTicker(b.Config.MonitorInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.Monitor.Poll()
			case <-b.done:
				b.Logger.Info("monitor stopped")
				return
			}
		}
	}()
}
