package protocol

import "fmt"

// Derives the correlation tag attached to outbound web requests.
// Pure function of its inputs.
func WebRequestTag(actionID int64, sessionNumber int64, sequenceNumber int64, serverID int, deviceID string, appID string) (tag string) {
	tag = fmt.Sprintf("%s_%d_%d_%s_%d_%s_%d_%d_%d",
		webRequestTagPrefix,
		ProtocolVersion,
		serverID,
		deviceID,
		sessionNumber,
		escape(appID),
		actionID,
		ThreadID,
		sequenceNumber,
	)
	return
}
