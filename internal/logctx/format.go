package logctx

import (
	"fmt"
	"strings"
	"time"
)

// Stringify full event
func (event Event) Format() (text string) {
	// Only print parts that are present
	var parts []string
	if !event.Timestamp.IsZero() {
		parts = append(parts, "["+padTimestamp(event.Timestamp)+"]")
	}
	if len(event.Tags) > 0 {
		parts = append(parts, "["+strings.Join(event.Tags, "/")+"]")
	}
	if event.Severity != "" {
		parts = append(parts, "["+event.Severity+"]")
	}
	if event.Message != "" {
		msg := event.Message
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		parts = append(parts, msg)
	}

	text = strings.Join(parts, " ")
	return
}

// Ensures fixed length strings for timestamps
func padTimestamp(timestamp time.Time) (formatted string) {
	formatted = timestamp.Format("2006-01-02T15:04:05.000000000Z07:00")
	return
}

// Suppression notice written in place of repeated events
func suppressionNotice(event Event, count int) (text string) {
	text = fmt.Sprintf("[%s] [%s] [%s] Suppressed %d repeated messages: %s",
		padTimestamp(event.Timestamp), strings.Join(event.Tags, "/"), "Info", count, event.Message)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return
}
