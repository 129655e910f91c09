package protocol

import (
	"fmt"
	"strconv"
)

// Writes the fields shared by every timed record
func newRecord(eventType int, name *string, parentActionID int64, startSeq int64, timeSinceSessionStart int64) (writer *fieldWriter) {
	writer = &fieldWriter{}
	writer.num(KeyEventType, int64(eventType))
	if name != nil {
		writer.text(KeyKeyName, *name)
	}
	writer.num(KeyThreadID, int64(ThreadID))
	writer.num(KeyParentActionID, parentActionID)
	writer.num(KeyStartSequenceNumber, startSeq)
	writer.num(KeyTime0, timeSinceSessionStart)
	return
}

func StartSession(startSeq int64) (record Record) {
	record = newRecord(EventTypeSessionStart, nil, 0, startSeq, 0).record()
	return
}

func EndSession(startSeq int64, duration int64) (record Record) {
	record = newRecord(EventTypeSessionEnd, nil, 0, startSeq, duration).record()
	return
}

// Completed user action, carries both the start and end sequence/time pairs
func Action(name string, actionID int64, startSeq int64, endSeq int64, timeSinceSessionStart int64, duration int64) (record Record) {
	writer := &fieldWriter{}
	writer.num(KeyEventType, int64(EventTypeManualAction))
	writer.text(KeyKeyName, name)
	writer.num(KeyThreadID, int64(ThreadID))
	writer.num(KeyActionID, actionID)
	writer.num(KeyParentActionID, 0)
	writer.num(KeyStartSequenceNumber, startSeq)
	writer.num(KeyEndSequenceNumber, endSeq)
	writer.num(KeyTime0, timeSinceSessionStart)
	writer.num(KeyTime1, duration)
	record = writer.record()
	return
}

func NamedEvent(name string, parentActionID int64, seq int64, timeSinceSessionStart int64) (record Record) {
	record = newRecord(EventTypeNamedEvent, &name, parentActionID, seq, timeSinceSessionStart).record()
	return
}

func IdentifyUser(userTag string, seq int64, timeSinceSessionStart int64) (record Record) {
	record = newRecord(EventTypeIdentifyUser, &userTag, 0, seq, timeSinceSessionStart).record()
	return
}

func ReportError(name string, reason string, errorValue int64, parentActionID int64, seq int64, timeSinceSessionStart int64) (record Record) {
	writer := newRecord(EventTypeError, &name, parentActionID, seq, timeSinceSessionStart)
	writer.text(KeyReason, reason)
	writer.num(KeyErrorValue, errorValue)
	record = writer.record()
	return
}

func ReportCrash(errorName string, reason string, stacktrace string, seq int64, timeSinceSessionStart int64) (record Record) {
	writer := newRecord(EventTypeCrash, &errorName, 0, seq, timeSinceSessionStart)
	writer.text(KeyReason, reason)
	writer.text(KeyStacktrace, stacktrace)
	record = writer.record()
	return
}

// Reports a named value attached to an action.
// nil leaves the value field out entirely. Strings, integers and floats each
// map to their own event type; non-finite floats are written as literals.
func ReportValue(actionID int64, name string, value any, seq int64, timeSinceSessionStart int64) (record Record) {
	eventType, text, present := classifyValue(value)

	writer := newRecord(eventType, &name, actionID, seq, timeSinceSessionStart)
	if present {
		writer.text(KeyValue, text)
	}
	record = writer.record()
	return
}

// Maps a reported value to its event type and wire text
func classifyValue(value any) (eventType int, text string, present bool) {
	eventType = EventTypeValueString
	present = true

	switch v := value.(type) {
	case nil:
		present = false
	case string:
		text = v
	case int:
		eventType, text = EventTypeValueInt, strconv.FormatInt(int64(v), 10)
	case int8:
		eventType, text = EventTypeValueInt, strconv.FormatInt(int64(v), 10)
	case int16:
		eventType, text = EventTypeValueInt, strconv.FormatInt(int64(v), 10)
	case int32:
		eventType, text = EventTypeValueInt, strconv.FormatInt(int64(v), 10)
	case int64:
		eventType, text = EventTypeValueInt, strconv.FormatInt(v, 10)
	case uint:
		eventType, text = EventTypeValueInt, strconv.FormatUint(uint64(v), 10)
	case uint8:
		eventType, text = EventTypeValueInt, strconv.FormatUint(uint64(v), 10)
	case uint16:
		eventType, text = EventTypeValueInt, strconv.FormatUint(uint64(v), 10)
	case uint32:
		eventType, text = EventTypeValueInt, strconv.FormatUint(uint64(v), 10)
	case uint64:
		eventType, text = EventTypeValueInt, strconv.FormatUint(v, 10)
	case float32:
		eventType, text = EventTypeValueDouble, formatDouble(float64(v))
	case float64:
		eventType, text = EventTypeValueDouble, formatDouble(v)
	case fmt.Stringer:
		text = v.String()
	default:
		text = fmt.Sprint(v)
	}
	return
}

// Traced outbound request. Negative byte counts or response code omit that field.
func WebRequest(url string, parentActionID int64, startSeq int64, timeSinceSessionStart int64, endSeq int64, duration int64,
	bytesSent int64, bytesReceived int64, responseCode int64) (record Record) {
	writer := newRecord(EventTypeWebRequest, &url, parentActionID, startSeq, timeSinceSessionStart)
	writer.num(KeyEndSequenceNumber, endSeq)
	writer.num(KeyTime1, duration)
	if bytesSent >= 0 {
		writer.num(KeyBytesSent, bytesSent)
	}
	if bytesReceived >= 0 {
		writer.num(KeyBytesReceived, bytesReceived)
	}
	if responseCode >= 0 {
		writer.num(KeyResponseCode, responseCode)
	}
	record = writer.record()
	return
}

// Wraps a JSON event payload; the JSON carries its own timing
func Event(jsonPayload string) (record Record) {
	writer := &fieldWriter{}
	writer.num(KeyEventType, int64(EventTypeCustomPayload))
	writer.str(KeyEventPayload, jsonPayload)
	record = writer.record()
	return
}
