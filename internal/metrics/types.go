package metrics

import (
	"sync"
	"time"
)

// Time-sliced metric store filled by periodic collection
type Registry struct {
	mu      sync.RWMutex
	metrics map[time.Time]map[string]map[string]Metric // key0=timestamp, key1=namespace, key2=name
}

// Anything that can report its metrics for an interval
type Collector interface {
	CollectMetrics(interval time.Duration) []Metric
}

type MetricType string

const (
	Counter MetricType = "counter" // reset every collection
	Gauge   MetricType = "gauge"   // can go up/down
)

// Container for a metric and associated data
type Metric struct {
	Name        string // e.g. beacons_sent, depth
	Description string
	Namespace   []string // e.g. "Sender/Session/Builder"
	Value       MetricValue
	Type        MetricType
	Timestamp   time.Time // time when the metric was recorded
}

// Specific value of a metric
type MetricValue struct {
	Raw      interface{}   // uint64, int64, float64
	Unit     string        // e.g., "ns", "bytes", "count"
	Interval time.Duration // measurement window
}

// JSON version
type JMetric struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Namespace   string       `json:"namespace"`
	Value       JMetricValue `json:"value"`
	Type        string       `json:"type"`
	Timestamp   string       `json:"timestamp"`
}

// Specific value of a metric
type JMetricValue struct {
	Raw      string `json:"raw"`
	Unit     string `json:"unit"`
	Interval string `json:"interval"`
}
