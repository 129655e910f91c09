package queue

import (
	"rumbeacon/internal/metrics"
	"time"
)

func (queue *Queue[T]) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	// Helper to add metrics
	add := func(name string, raw interface{}, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   queue.Namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	add("depth", queue.Metrics.Depth.Load(), "count", metrics.Gauge, "Current number of records in the queue")
	add("byte_sum", queue.Metrics.Bytes.Load(), "bytes", metrics.Gauge, "Byte sum of all records in the queue")
	add("pushes", queue.Metrics.Pushes.Swap(0), "count", metrics.Counter, "Records pushed in the interval")
	add("pops", queue.Metrics.Pops.Swap(0), "count", metrics.Counter, "Records popped in the interval")
	add("empty_pops", queue.Metrics.EmptyPops.Swap(0), "count", metrics.Counter, "Pops attempted on an empty queue in the interval")
	return
}
