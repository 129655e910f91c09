package queue

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type item string

func (i item) Size() int { return len(i) }

func TestQueue_FIFO(t *testing.T) {
	tests := []struct {
		name  string
		items []item
	}{
		{"single item", []item{"a"}},
		{"several items", []item{"a", "bb", "ccc", "dddd"}},
		{"past compaction threshold", makeItems(3 * compactThreshold)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New[item]([]string{"test"})
			if !q.IsEmpty() {
				t.Fatalf("new queue not empty")
			}

			wantBytes := 0
			for _, it := range tt.items {
				q.Push(it)
				wantBytes += it.Size()
			}
			if q.Len() != len(tt.items) {
				t.Fatalf("Len() = %d, want %d", q.Len(), len(tt.items))
			}
			if q.Bytes() != wantBytes {
				t.Fatalf("Bytes() = %d, want %d", q.Bytes(), wantBytes)
			}

			for i, want := range tt.items {
				head, ok := q.Peek()
				if !ok || head != want {
					t.Fatalf("Peek() #%d = %q,%v want %q", i, head, ok, want)
				}
				got, err := q.Pop()
				if err != nil {
					t.Fatalf("Pop() #%d unexpected error: %v", i, err)
				}
				if got != want {
					t.Fatalf("Pop() #%d = %q, want %q", i, got, want)
				}
			}

			if !q.IsEmpty() || q.Bytes() != 0 {
				t.Fatalf("queue not drained: len=%d bytes=%d", q.Len(), q.Bytes())
			}
		})
	}
}

func TestQueue_Empty(t *testing.T) {
	q := New[item]([]string{"test"})

	if head, ok := q.Peek(); ok || head != "" {
		t.Fatalf("Peek() on empty queue = %q,%v", head, ok)
	}

	_, err := q.Pop()
	if !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("Pop() on empty queue error = %v, want ErrEmptyQueue", err)
	}
	if q.Metrics.EmptyPops.Load() != 1 {
		t.Fatalf("empty pop not counted")
	}
}

func TestQueue_PeekDoesNotConsume(t *testing.T) {
	q := New[item]([]string{"test"})
	q.Push("x")

	for i := 0; i < 3; i++ {
		if head, ok := q.Peek(); !ok || head != "x" {
			t.Fatalf("Peek() = %q,%v", head, ok)
		}
	}
	if q.Len() != 1 {
		t.Fatalf("peek consumed item")
	}
}

func TestQueue_InterleavedPushPop(t *testing.T) {
	q := New[item]([]string{"test"})
	var popped []string

	for i := 0; i < 200; i++ {
		q.Push(item(strings.Repeat("z", i%7+1)))
		if i%3 == 0 {
			got, err := q.Pop()
			if err != nil {
				t.Fatalf("unexpected pop error: %v", err)
			}
			popped = append(popped, string(got))
		}
	}
	for !q.IsEmpty() {
		got, _ := q.Pop()
		popped = append(popped, string(got))
	}

	if len(popped) != 200 {
		t.Fatalf("popped %d items, want 200", len(popped))
	}
	for i, got := range popped {
		if want := strings.Repeat("z", i%7+1); got != want {
			t.Fatalf("item %d = %q, want %q", i, got, want)
		}
	}
}

func TestQueue_WatermarkCrossed(t *testing.T) {
	q := New[item]([]string{"test"})
	q.watermark = 4

	q.Push("abc")
	if q.WatermarkCrossed() {
		t.Fatalf("crossed below watermark")
	}
	q.Push("de")
	if !q.WatermarkCrossed() {
		t.Fatalf("expected crossing above watermark")
	}
	if q.WatermarkCrossed() {
		t.Fatalf("crossing reported twice")
	}

	q.Pop()
	q.Pop()
	if q.WatermarkCrossed() {
		t.Fatalf("crossed after draining")
	}
	q.Push("fghij")
	if !q.WatermarkCrossed() {
		t.Fatalf("expected second crossing after falling below")
	}
}

func TestQueue_CollectMetrics(t *testing.T) {
	q := New[item]([]string{"test"})
	q.Push("aa")
	q.Push("bbb")
	q.Pop()

	collected := q.CollectMetrics(time.Second)

	want := map[string]uint64{"depth": 1, "byte_sum": 3, "pushes": 2, "pops": 1, "empty_pops": 0}
	if len(collected) != len(want) {
		t.Fatalf("collected %d metrics, want %d", len(collected), len(want))
	}
	for _, m := range collected {
		raw, ok := m.Value.Raw.(uint64)
		if !ok {
			t.Fatalf("metric %s raw type %T", m.Name, m.Value.Raw)
		}
		if raw != want[m.Name] {
			t.Fatalf("metric %s = %d, want %d", m.Name, raw, want[m.Name])
		}
		if len(m.Namespace) != 2 || m.Namespace[1] != "Queue" {
			t.Fatalf("unexpected namespace %v", m.Namespace)
		}
	}

	// Counters reset after collection
	for _, m := range q.CollectMetrics(time.Second) {
		if m.Name == "pushes" && m.Value.Raw.(uint64) != 0 {
			t.Fatalf("push counter not reset")
		}
	}
}

func makeItems(n int) (items []item) {
	for i := 0; i < n; i++ {
		items = append(items, item(strings.Repeat("q", i%5+1)))
	}
	return
}
