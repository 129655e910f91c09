package payload

import (
	"rumbeacon/internal/metrics"
	"time"
)

func (builder *Builder) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw interface{}, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   builder.Namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	add("records_pushed", builder.Metrics.RecordsPushed.Swap(0), "count", metrics.Counter, "Records queued in the interval")
	add("records_gated", builder.Metrics.RecordsGated.Swap(0), "count", metrics.Counter, "Report calls dropped by capture gates in the interval")
	add("beacons_built", builder.Metrics.BeaconsBuilt.Swap(0), "count", metrics.Counter, "Beacons assembled in the interval")
	add("beacon_bytes", builder.Metrics.BeaconBytes.Swap(0), "bytes", metrics.Counter, "Byte sum of beacons assembled in the interval")
	add("max_beacon_bytes", builder.Metrics.MaxBeaconBytes.Swap(0), "bytes", metrics.Gauge, "Largest beacon assembled in the interval")
	add("oversized_beacons", builder.Metrics.OversizedBeacons.Swap(0), "count", metrics.Counter, "Beacons exceeding the budget because of a single oversized record")
	add("listener_panics", builder.Metrics.ListenerPanics.Swap(0), "count", metrics.Counter, "Recovered listener panics in the interval")

	collection = append(collection, builder.queue.CollectMetrics(interval)...)
	return
}
