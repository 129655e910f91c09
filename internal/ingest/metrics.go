package ingest

import (
	"rumbeacon/internal/metrics"
	"time"
)

func (reader *Reader) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw interface{}, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   reader.Namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	add("lines_read", reader.Metrics.LinesRead.Swap(0), "count", metrics.Counter, "Non-empty input lines read")
	add("applied", reader.Metrics.Applied.Swap(0), "count", metrics.Counter, "Lines applied to the session")
	add("malformed", reader.Metrics.Malformed.Swap(0), "count", metrics.Counter, "Lines skipped as malformed")
	return
}
