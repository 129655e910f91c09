package queue

import (
	"errors"
	"sync/atomic"
)

var ErrEmptyQueue = errors.New("queue is empty")

// Anything with a byte length can be queued
type Sizer interface {
	Size() int
}

// Unbounded FIFO owned by a single payload builder.
// Only Metrics may be read from other goroutines.
type Queue[T Sizer] struct {
	Namespace []string
	items     []T
	head      int    // index of the oldest item in items
	bytes     int    // byte sum of queued items
	watermark uint64 // byte level that triggers a memory warning (0 disables)
	overMark  bool
	Metrics   *MetricStorage
}

type MetricStorage struct {
	Depth atomic.Uint64 // Current items in queue
	Bytes atomic.Uint64 // Current byte size in queue

	Pushes    atomic.Uint64 // every Push call
	Pops      atomic.Uint64 // successful Pop calls
	EmptyPops atomic.Uint64 // Pop on an empty queue
}
