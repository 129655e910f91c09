package metrics

import (
	"testing"
	"time"
)

type fakeCollector struct {
	namespace []string
	value     uint64
}

func (c fakeCollector) CollectMetrics(interval time.Duration) []Metric {
	return []Metric{{
		Name:      "beacons_sent",
		Namespace: c.namespace,
		Type:      Counter,
		Value:     MetricValue{Raw: c.value, Unit: "count", Interval: interval},
	}}
}

func setupRegistryWithData(t *testing.T) (mockRegistry *Registry, mockedTimeSlices map[string]time.Time) {
	t.Helper()

	mockRegistry = New()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mockedTimeSlices = map[string]time.Time{
		"ts1": base,
		"ts2": base.Add(time.Minute),
		"ts3": base.Add(2 * time.Minute),
	}

	for _, key := range []string{"ts1", "ts2", "ts3"} {
		slice := mockRegistry.NewTimeSlice(mockedTimeSlices[key], time.Minute)
		mockRegistry.Add(slice, []Metric{
			{Name: "depth", Namespace: []string{"Sender", "Session", "1", "Queue"}, Value: MetricValue{Raw: uint64(2)}, Type: Gauge},
			{Name: "records_pushed", Namespace: []string{"Sender", "Session", "1", "Builder"}, Value: MetricValue{Raw: uint64(10)}, Type: Counter},
			{Name: "send_time", Namespace: []string{"Sender", "HTTP"}, Value: MetricValue{Raw: int64(-5)}, Type: Gauge},
		})
	}
	return
}

func TestRegistry_NewTimeSlice(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		interval time.Duration
		want     time.Time
	}{
		{
			name:     "truncated to interval",
			now:      time.Date(2026, 1, 1, 12, 0, 42, 0, time.UTC),
			interval: time.Minute,
			want:     time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "zero interval keeps time",
			now:      time.Date(2026, 1, 1, 12, 0, 42, 5, time.UTC),
			interval: 0,
			want:     time.Date(2026, 1, 1, 12, 0, 42, 5, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			got := reg.NewTimeSlice(tt.now, tt.interval)
			if !got.Equal(tt.want) {
				t.Fatalf("NewTimeSlice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_AddUnknownSlice(t *testing.T) {
	reg := New()
	reg.Add(time.Now(), []Metric{{Name: "lost"}})

	if got := reg.Search("", nil, time.Time{}, time.Time{}); len(got) != 0 {
		t.Fatalf("metric added to missing slice: %v", got)
	}
}

func TestRegistry_Collect(t *testing.T) {
	reg := New()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	reg.Collect(now, time.Second,
		fakeCollector{namespace: []string{"Sender", "A"}, value: 3},
		nil,
		fakeCollector{namespace: []string{"Sender", "B"}, value: 4},
	)

	total, err := reg.Sum("beacons_sent", []string{"Sender"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 {
		t.Fatalf("sum = %v, want 7", total)
	}
}
