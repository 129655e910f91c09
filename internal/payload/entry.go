// Capture gating, record queuing and size-bounded beacon assembly for one session
package payload

import (
	"context"
	"rumbeacon/internal/commstate"
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
	"rumbeacon/internal/queue"
	"rumbeacon/pkg/protocol"
)

func New(ctx context.Context, state *commstate.State) (new *Builder) {
	namespace := append(append([]string(nil), logctx.GetTagList(ctx)...), global.NSBuilder)

	new = &Builder{
		Namespace: namespace,
		ctx:       logctx.AppendCtxTag(ctx, global.NSBuilder),
		state:     state,
		queue:     queue.New[protocol.Record](namespace),
		Metrics:   &MetricStorage{},
	}
	return
}

// Adds a listener notified synchronously after every committed record
func (builder *Builder) Register(listener Listener) {
	if listener == nil {
		return
	}
	builder.listeners = append(builder.listeners, listener)
}

// Network data attached to every following beacon
func (builder *Builder) SetSupplementary(supplementary protocol.Supplementary) {
	builder.supplementary = supplementary
}

// Number of records waiting for a beacon
func (builder *Builder) QueueLen() (length int) {
	length = builder.queue.Len()
	return
}

// Byte sum of records waiting for a beacon
func (builder *Builder) QueueBytes() (size int) {
	size = builder.queue.Bytes()
	return
}

// Correlation tag for an outbound request, using the current server id
func (builder *Builder) WebRequestTag(actionID int64, sessionNumber int64, sequenceNumber int64, deviceID string, appID string) (tag string) {
	tag = protocol.WebRequestTag(actionID, sessionNumber, sequenceNumber, builder.state.ServerID(), deviceID, appID)
	return
}

// Commits record to the queue, then notifies listeners
func (builder *Builder) push(record protocol.Record) {
	builder.queue.Push(record)
	builder.Metrics.RecordsPushed.Add(1)

	if builder.queue.WatermarkCrossed() {
		logctx.LogEvent(builder.ctx, global.VerbosityStandard, global.WarnLog,
			"Queued records exceed memory watermark: %d records, %d bytes\n",
			builder.queue.Len(), builder.queue.Bytes())
	}

	for index, listener := range builder.listeners {
		builder.notify(index, listener, record)
	}
}

// Isolates one listener call so a panic cannot reach the caller or skip other listeners
func (builder *Builder) notify(index int, listener Listener, record protocol.Record) {
	defer func() {
		if fatalError := recover(); fatalError != nil {
			builder.Metrics.ListenerPanics.Add(1)
			logctx.LogEvent(builder.ctx, global.VerbosityStandard, global.ErrorLog,
				"panic in payload listener %d: %v\n", index, fatalError)
		}
	}()

	listener.Added(record)
}
