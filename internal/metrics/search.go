package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Supports exact match or prefix match. Empty query matches all.
func matchesNamespace(metricNS, queryNS []string) (matches bool) {
	if len(queryNS) == 0 {
		matches = true
		return
	}
	if len(metricNS) < len(queryNS) {
		return
	}
	for i := 0; i < len(queryNS); i++ {
		if metricNS[i] != queryNS[i] {
			return
		}
	}
	matches = true
	return
}

// Returns all metrics matching given name and namespace prefix, oldest first.
// Empty name or prefix matches everything; zero start/end leave the window open.
func (registry *Registry) Search(name string, namespacePrefix []string, start, end time.Time) (results []Metric) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	var timestamps []time.Time
	for ts := range registry.metrics {
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})

	for _, ts := range timestamps {
		nsMap := registry.metrics[ts]

		// Stable namespace order inside one slice
		namespaces := make([]string, 0, len(nsMap))
		for nsStr := range nsMap {
			namespaces = append(namespaces, nsStr)
		}
		sort.Strings(namespaces)

		for _, nsStr := range namespaces {
			if !matchesNamespace(strings.Split(nsStr, "/"), namespacePrefix) {
				continue
			}
			for metricName, metric := range nsMap[nsStr] {
				if name == "" || metricName == name {
					results = append(results, metric)
				}
			}
		}
	}
	return
}

// Adds up every recorded value of a metric across all time slices
func (registry *Registry) Sum(name string, namespacePrefix []string) (total float64, err error) {
	for _, metric := range registry.Search(name, namespacePrefix, time.Time{}, time.Time{}) {
		var value float64
		value, err = toFloat(metric.Value.Raw)
		if err != nil {
			err = fmt.Errorf("metric %s in %s: %w", metric.Name, strings.Join(metric.Namespace, "/"), err)
			return
		}
		total += value
	}
	return
}

func toFloat(raw interface{}) (value float64, err error) {
	switch v := raw.(type) {
	case uint64:
		value = float64(v)
	case int64:
		value = float64(v)
	case int:
		value = float64(v)
	case float64:
		value = v
	case string:
		value, err = strconv.ParseFloat(v, 64)
	default:
		err = fmt.Errorf("non-numeric value of type %T", raw)
	}
	return
}
