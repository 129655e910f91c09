// Ordered record buffer with peek/pop semantics
package queue

import (
	"rumbeacon/internal/global"

	"github.com/pbnjay/memory"
)

// Items popped before the backing slice is compacted
const compactThreshold int = 64

// Creates an empty queue. The memory watermark is a fraction of total system memory.
func New[T Sizer](namespace []string) (new *Queue[T]) {
	new = &Queue[T]{
		Namespace: append(append([]string(nil), namespace...), global.NSQueue),
		items:     make([]T, 0),
		watermark: memory.TotalMemory() / global.QueueMemoryDivisor,
		Metrics:   &MetricStorage{},
	}
	return
}

// Appends item to the tail
func (queue *Queue[T]) Push(item T) {
	queue.items = append(queue.items, item)
	queue.bytes += item.Size()

	queue.Metrics.Pushes.Add(1)
	queue.Metrics.Depth.Store(uint64(queue.Len()))
	queue.Metrics.Bytes.Store(uint64(queue.bytes))
}

// Returns the head without removing it. ok is false on an empty queue.
func (queue *Queue[T]) Peek() (item T, ok bool) {
	if queue.IsEmpty() {
		return
	}
	item = queue.items[queue.head]
	ok = true
	return
}

// Removes and returns the head. Popping an empty queue is a caller bug.
func (queue *Queue[T]) Pop() (item T, err error) {
	if queue.IsEmpty() {
		queue.Metrics.EmptyPops.Add(1)
		err = ErrEmptyQueue
		return
	}

	item = queue.items[queue.head]

	var zero T
	queue.items[queue.head] = zero // release reference
	queue.head++
	queue.bytes -= item.Size()

	// Reclaim the consumed front of the slice
	if queue.head >= compactThreshold && queue.head*2 >= len(queue.items) {
		queue.items = append(make([]T, 0, len(queue.items)-queue.head), queue.items[queue.head:]...)
		queue.head = 0
	}

	queue.Metrics.Pops.Add(1)
	queue.Metrics.Depth.Store(uint64(queue.Len()))
	queue.Metrics.Bytes.Store(uint64(queue.bytes))
	return
}

func (queue *Queue[T]) IsEmpty() (empty bool) {
	empty = queue.Len() == 0
	return
}

// Number of queued items
func (queue *Queue[T]) Len() (length int) {
	length = len(queue.items) - queue.head
	return
}

// Byte sum of queued items
func (queue *Queue[T]) Bytes() (size int) {
	size = queue.bytes
	return
}

// Reports true once each time the queued bytes rise above the memory watermark
func (queue *Queue[T]) WatermarkCrossed() (crossed bool) {
	if queue.watermark == 0 {
		return
	}

	over := uint64(queue.bytes) > queue.watermark
	crossed = over && !queue.overMark
	queue.overMark = over
	return
}
