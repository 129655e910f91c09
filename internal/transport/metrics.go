package transport

import (
	"rumbeacon/internal/metrics"
	"time"
)

func (storage *MetricStorage) collect(namespace []string, interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw interface{}, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	add("status_requests", storage.StatusRequests.Swap(0), "count", metrics.Counter, "Status requests sent in the interval")
	add("beacons_sent", storage.BeaconsSent.Swap(0), "count", metrics.Counter, "Beacons delivered in the interval")
	add("bytes_sent", storage.BytesSent.Swap(0), "bytes", metrics.Counter, "Beacon bytes delivered in the interval")
	add("invalid_responses", storage.InvalidResponses.Swap(0), "count", metrics.Counter, "Responses that were not a usable status response")
	add("failures", storage.Failures.Swap(0), "count", metrics.Counter, "Requests failed before a response was read")
	add("busy_responses", storage.BusyResponses.Swap(0), "count", metrics.Counter, "Too many requests or server error responses")
	return
}

func (client *HTTPClient) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	collection = client.Metrics.collect(client.Namespace, interval)
	return
}

func (mirror *BeatsMirror) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	if mirror == nil {
		return
	}
	collection = mirror.Metrics.collect(mirror.Namespace, interval)
	return
}
