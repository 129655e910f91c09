package agent

import (
	"context"
	"rumbeacon/internal/commstate"
	"rumbeacon/internal/event"
	"rumbeacon/internal/payload"
	"rumbeacon/pkg/protocol"
	"sync"
	"time"
)

type Config struct {
	App           protocol.AppInfo
	Supplementary protocol.Supplementary
	Clock         func() time.Time        // defaults to time.Now
	SessionNumber func() (int64, error)   // defaults to a random positive number
}

// Application wide owner of negotiated state and identity
type Agent struct {
	ctx           context.Context
	mutex         sync.Mutex
	state         *commstate.State
	app           protocol.AppInfo
	prefix        string
	supplementary protocol.Supplementary
	events        event.Info
	clock         func() time.Time
	sessionNumber func() (int64, error)
	flush         chan struct{} // signalled when a session wants its data sent promptly
}

// One monitored session. Every method serializes on the session mutex.
type Session struct {
	ctx         context.Context
	mutex       sync.Mutex
	agent       *Agent
	state       *commstate.State
	builder     *payload.Builder
	events      *event.Builder
	number      int64
	prefix      string
	start       time.Time
	seq         int64
	lastAction  int64
	openActions map[int64]*Action
	initialized bool
	ended       bool
}

// User action; a nil session makes every method a no-op
type Action struct {
	session  *Session
	id       int64
	name     string
	startSeq int64
	start    time.Time
	left     bool
}

// Timing of one outbound request; a nil session makes every method a no-op
type WebRequestTracer struct {
	session  *Session
	parentID int64
	url      string
	tag      string
	startSeq int64
	start    time.Time
	stopped  bool
}
