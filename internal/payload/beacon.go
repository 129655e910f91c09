package payload

import (
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
	"rumbeacon/pkg/protocol"
	"strings"
)

// Assembles the next beacon: prefix, mutable fields, then as many queued
// records as fit in the negotiated budget, oldest first.
// ok is false when nothing is queued.
//
// A record that cannot fit even into an otherwise empty beacon is sent alone,
// so the queue never stalls behind it. That is the only case a beacon exceeds the budget.
func (builder *Builder) NextPayload(prefix string, transmissionTime int64) (beacon string, ok bool) {
	if builder.queue.IsEmpty() {
		return
	}

	maxBeaconSize := builder.state.MaxBeaconSize()

	var payload strings.Builder
	payload.WriteString(protocol.Combine(prefix,
		protocol.Mutable(builder.state.Multiplicity(), transmissionTime, builder.supplementary)))

	var packed int
	for {
		next, present := builder.queue.Peek()
		if !present {
			break
		}

		oversized := false
		remaining := maxBeaconSize - payload.Len()
		if next.Size()+1 > remaining {
			if packed > 0 {
				break
			}
			oversized = true
		}

		record, err := builder.queue.Pop()
		if err != nil {
			// Peek just succeeded, only reachable on a queue bug
			logctx.LogEvent(builder.ctx, global.VerbosityStandard, global.ErrorLog,
				"failed to pop peeked record: %v\n", err)
			break
		}
		payload.WriteByte('&')
		payload.WriteString(string(record))
		packed++

		if oversized {
			builder.Metrics.OversizedBeacons.Add(1)
			logctx.LogEvent(builder.ctx, global.VerbosityStandard, global.WarnLog,
				"Record of %d bytes exceeds beacon budget of %d bytes, sending it alone\n",
				record.Size(), maxBeaconSize)
			break
		}
	}

	beacon = payload.String()
	ok = true

	size := uint64(len(beacon))
	builder.Metrics.BeaconsBuilt.Add(1)
	builder.Metrics.BeaconBytes.Add(size)
	if maxSeen := builder.Metrics.MaxBeaconBytes.Load(); size > maxSeen {
		builder.Metrics.MaxBeaconBytes.CompareAndSwap(maxSeen, size)
	}

	logctx.LogEvent(builder.ctx, global.VerbosityData, global.InfoLog,
		"Built beacon with %d records (%d bytes), %d records remain queued\n", packed, len(beacon), builder.queue.Len())
	return
}
