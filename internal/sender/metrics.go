package sender

import (
	"context"
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
	"rumbeacon/internal/metrics"
	"runtime/debug"
	"time"
)

func (daemon *Daemon) runMetrics(ctx context.Context) {
	ctx = logctx.AppendCtxTag(ctx, global.NSMetric)

	interval := daemon.cfg.MetricCollectionInterval
	lastRun := time.Now()

	ticker := time.NewTicker(interval / 2) // Use polling interval half of desired record interval
	defer ticker.Stop()

	// Counter to track how many ticks have passed (for retention)
	var tickCount int

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Sub(lastRun) >= interval {
				lastRun = now
				daemon.collectMetrics(ctx, now, interval)
			}

			tickCount++
			if tickCount >= 30 {
				daemon.Registry.Prune(now, daemon.cfg.MetricMaxAge)
				tickCount = 0
			}
		}
	}
}

// Read metrics of every pipeline component into one time slice
func (daemon *Daemon) collectMetrics(ctx context.Context, now time.Time, interval time.Duration) {
	// Record panics and continue on next interval
	defer func() {
		if fatalError := recover(); fatalError != nil {
			stack := debug.Stack()
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"panic in sender metric collector: %v\n%s", fatalError, stack)
		}
	}()

	collectors := []metrics.Collector{daemon, daemon.mirror}
	if client, ok := daemon.client.(metrics.Collector); ok {
		collectors = append(collectors, client)
	}

	daemon.mutex.Lock()
	for _, session := range daemon.sessions {
		collectors = append(collectors, session)
	}
	daemon.mutex.Unlock()

	daemon.Registry.Collect(now, interval, collectors...)
}

func (daemon *Daemon) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw interface{}, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   daemon.Namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	daemon.mutex.Lock()
	backoff := daemon.backoff
	daemon.mutex.Unlock()

	add("flushes", daemon.Metrics.Flushes.Swap(0), "count", metrics.Counter, "Flush passes in the interval")
	add("dropped_beacons", daemon.Metrics.DroppedBeacons.Swap(0), "count", metrics.Counter, "Beacons lost to failed requests")
	add("backoffs", daemon.Metrics.Backoffs.Swap(0), "count", metrics.Counter, "Flush passes ended by a failure")
	add("stopped_sessions", daemon.Metrics.StoppedSessions.Swap(0), "count", metrics.Counter, "Sessions stopped by the collector")
	add("active_sessions", daemon.Metrics.ActiveSessions.Load(), "count", metrics.Gauge, "Sessions tracked for delivery")
	add("backoff", int64(backoff), "ns", metrics.Gauge, "Current wait before the next flush pass")
	return
}
