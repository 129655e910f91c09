package payload

import "rumbeacon/pkg/protocol"

func (builder *Builder) ReportNamedEvent(name string, actionID int64, seq int64, timeSinceSessionStart int64) {
	if builder.captureDisabled() {
		return
	}
	builder.push(protocol.NamedEvent(name, actionID, seq, timeSinceSessionStart))
}

// Queues a JSON business or custom event
func (builder *Builder) SendEvent(jsonPayload string) {
	if builder.captureDisabled() {
		return
	}
	builder.push(protocol.Event(jsonPayload))
}

func (builder *Builder) ReportCrash(errorName string, reason string, stacktrace string, seq int64, timeSinceSessionStart int64) {
	if builder.captureCrashesDisabled() {
		return
	}
	builder.push(protocol.ReportCrash(errorName, reason, stacktrace, seq, timeSinceSessionStart))
}

func (builder *Builder) ReportError(name string, reason string, errorValue int64, parentActionID int64, seq int64, timeSinceSessionStart int64) {
	if builder.captureErrorsDisabled() {
		return
	}
	builder.push(protocol.ReportError(name, reason, errorValue, parentActionID, seq, timeSinceSessionStart))
}

func (builder *Builder) ReportValue(name string, value any, actionID int64, seq int64, timeSinceSessionStart int64) {
	if builder.captureDisabled() {
		return
	}
	builder.push(protocol.ReportValue(actionID, name, value, seq, timeSinceSessionStart))
}

func (builder *Builder) IdentifyUser(userTag string, seq int64, timeSinceSessionStart int64) {
	if builder.captureDisabled() {
		return
	}
	builder.push(protocol.IdentifyUser(userTag, seq, timeSinceSessionStart))
}

func (builder *Builder) Action(name string, actionID int64, startSeq int64, endSeq int64, timeSinceSessionStart int64, duration int64) {
	if builder.captureDisabled() {
		return
	}
	builder.push(protocol.Action(name, actionID, startSeq, endSeq, timeSinceSessionStart, duration))
}

func (builder *Builder) StartSession(seq int64) {
	if builder.captureDisabled() {
		return
	}
	builder.push(protocol.StartSession(seq))
}

func (builder *Builder) EndSession(seq int64, duration int64) {
	if builder.captureDisabled() {
		return
	}
	builder.push(protocol.EndSession(seq, duration))
}

func (builder *Builder) WebRequest(url string, parentActionID int64, startSeq int64, timeSinceSessionStart int64, endSeq int64, duration int64,
	bytesSent int64, bytesReceived int64, responseCode int64) {
	if builder.captureDisabled() {
		return
	}
	builder.push(protocol.WebRequest(url, parentActionID, startSeq, timeSinceSessionStart, endSeq, duration,
		bytesSent, bytesReceived, responseCode))
}
