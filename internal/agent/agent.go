// Application and session facade over the beacon core
package agent

import (
	"context"
	"fmt"
	"rumbeacon/internal/commstate"
	"rumbeacon/internal/event"
	"rumbeacon/internal/global"
	"rumbeacon/internal/identity"
	"rumbeacon/internal/logctx"
	"rumbeacon/internal/payload"
	"rumbeacon/pkg/protocol"
	"strconv"
	"time"
)

func New(ctx context.Context, cfg Config) (new *Agent) {
	new = &Agent{
		ctx:           logctx.AppendCtxTag(ctx, global.NSAgent),
		state:         commstate.New(),
		app:           cfg.App,
		prefix:        protocol.ApplicationWidePrefix(cfg.App),
		supplementary: cfg.Supplementary,
		events: event.Info{
			ApplicationID:      cfg.App.ApplicationID,
			DeviceID:           cfg.App.DeviceID,
			ApplicationVersion: cfg.App.ApplicationVersion,
			OperatingSystem:    cfg.App.OperatingSystem,
			Manufacturer:       cfg.App.Manufacturer,
			ModelID:            cfg.App.ModelID,
		},
		clock:         cfg.Clock,
		sessionNumber: cfg.SessionNumber,
		flush:         make(chan struct{}, 1),
	}
	if new.clock == nil {
		new.clock = time.Now
	}
	if new.sessionNumber == nil {
		new.sessionNumber = identity.SessionNumber
	}
	return
}

// Applies an application level status response
func (agent *Agent) ApplyStatusResponse(resp commstate.StatusResponse) {
	agent.mutex.Lock()
	defer agent.mutex.Unlock()

	agent.state.ApplyStatusResponse(resp)
	logctx.LogEvent(agent.ctx, global.VerbosityProgress, global.InfoLog,
		"Application state updated: %s\n", agent.state)
}

// Snapshot of the application state
func (agent *Agent) State() (snapshot *commstate.State) {
	agent.mutex.Lock()
	defer agent.mutex.Unlock()

	snapshot = agent.state.Clone()
	return
}

func (agent *Agent) App() (app protocol.AppInfo) {
	app = agent.app
	return
}

// Signalled (coalesced) when a session asks for an early flush
func (agent *Agent) FlushRequests() (requests <-chan struct{}) {
	requests = agent.flush
	return
}

func (agent *Agent) requestFlush() {
	select {
	case agent.flush <- struct{}{}:
	default:
	}
}

// Starts a session on a clone of the application state.
// The session start record is queued immediately.
func (agent *Agent) NewSession(clientIP string) (session *Session, err error) {
	number, err := agent.sessionNumber()
	if err != nil {
		err = fmt.Errorf("failed to generate session number: %w", err)
		return
	}

	ctx := logctx.AppendCtxTag(agent.ctx, global.NSSession)
	ctx = logctx.AppendCtxTag(ctx, strconv.FormatInt(number, 10))

	state := agent.State()
	start := agent.clock()

	session = &Session{
		ctx:         ctx,
		agent:       agent,
		state:       state,
		builder:     payload.New(ctx, state),
		events:      event.NewBuilder(ctx, agent.events),
		number:      number,
		prefix:      protocol.SessionPrefix(agent.prefix, number, clientIP, start.UnixMilli()),
		start:       start,
		openActions: make(map[int64]*Action),
	}
	session.builder.SetSupplementary(agent.supplementary)
	if agent.app.DataCollectionLevel != protocol.DataCollectionOff {
		session.builder.StartSession(session.nextSeq())
	}

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Session %d started\n", number)
	return
}
