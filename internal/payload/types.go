package payload

import (
	"context"
	"rumbeacon/internal/commstate"
	"rumbeacon/internal/queue"
	"rumbeacon/pkg/protocol"
	"sync/atomic"
)

// Observer of every committed record
type Listener interface {
	Added(record protocol.Record)
}

// Adapter to use a plain function as a Listener
type ListenerFunc func(record protocol.Record)

func (fn ListenerFunc) Added(record protocol.Record) {
	fn(record)
}

// Per-session payload builder. Owns its queue; reads the session state on every call.
// Not safe for concurrent use.
type Builder struct {
	Namespace     []string
	ctx           context.Context
	state         *commstate.State
	queue         *queue.Queue[protocol.Record]
	listeners     []Listener
	supplementary protocol.Supplementary
	Metrics       *MetricStorage
}

type MetricStorage struct {
	RecordsPushed    atomic.Uint64 // Records accepted into the queue
	RecordsGated     atomic.Uint64 // Report calls dropped by a closed capture gate
	BeaconsBuilt     atomic.Uint64 // Non-empty NextPayload results
	BeaconBytes      atomic.Uint64 // Byte sum of built beacons
	MaxBeaconBytes   atomic.Uint64 // Largest beacon built
	OversizedBeacons atomic.Uint64 // Beacons carrying a record larger than the budget
	ListenerPanics   atomic.Uint64 // Recovered listener panics
}
