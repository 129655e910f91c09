package logctx

import (
	"sync"
	"time"
)

// Log Event Structure
type Event struct {
	Timestamp time.Time
	Severity  string
	Tags      []string
	Message   string
}

// Buffered logger, carried through context.
// Events are queued by producers and drained by a single watcher.
type Logger struct {
	ID         string
	CreatedAt  time.Time
	Done       <-chan struct{}
	PrintLevel int // Level at which the message should be recorded

	queue []Event         // event buffer
	mutex sync.Mutex      // protects buffer and level
	cond  *sync.Cond      // signals new events
	wg    *sync.WaitGroup // Holds main execution threads until log watchers are done handling events
}

// Repetition tracker for the watcher
type dedupState struct {
	lastMsg          string
	repeatCount      int
	lastSuppressTime time.Time
}
