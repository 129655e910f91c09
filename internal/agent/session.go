package agent

import (
	"rumbeacon/internal/commstate"
	"rumbeacon/internal/event"
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
	"rumbeacon/internal/metrics"
	"rumbeacon/internal/payload"
	"rumbeacon/pkg/protocol"
	"time"
)

// Caller must hold the session mutex
func (session *Session) nextSeq() (seq int64) {
	seq = session.seq
	session.seq++
	return
}

// Milliseconds since session start. Caller must hold the session mutex.
func (session *Session) elapsed(now time.Time) (ms int64) {
	ms = now.Sub(session.start).Milliseconds()
	return
}

func (session *Session) level() (level int) {
	level = session.agent.app.DataCollectionLevel
	return
}

func (session *Session) Number() (number int64) {
	number = session.number
	return
}

// Refreshes from the application state, applies the new-session response and locks the server id
func (session *Session) Init(resp commstate.StatusResponse) {
	parent := session.agent.State()

	session.mutex.Lock()
	defer session.mutex.Unlock()

	session.state.MergeFrom(parent)
	session.state.ApplyStatusResponse(resp)
	session.state.LockServerID()
	session.initialized = true

	logctx.LogEvent(session.ctx, global.VerbosityProgress, global.InfoLog,
		"Session initialized: %s\n", session.state)
}

// Applies a status response received for one of this session's beacons
func (session *Session) ApplyStatusResponse(resp commstate.StatusResponse) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	session.state.ApplyStatusResponse(resp)
	if session.state.IsCommunicationStopped() {
		logctx.LogEvent(session.ctx, global.VerbosityStandard, global.WarnLog,
			"Collector stopped communication for session %d\n", session.number)
	}
}

// Halts reporting for this session
func (session *Session) StopCommunication() {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	session.state.StopCommunication()
}

// Snapshot of the session state
func (session *Session) State() (snapshot *commstate.State) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	snapshot = session.state.Clone()
	return
}

func (session *Session) IsInitialized() (initialized bool) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	initialized = session.initialized
	return
}

func (session *Session) IsEnded() (ended bool) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	ended = session.ended
	return
}

func (session *Session) Register(listener payload.Listener) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	session.builder.Register(listener)
}

func (session *Session) QueueLen() (length int) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	length = session.builder.QueueLen()
	return
}

// Next beacon to transmit, nothing before the session is initialized
func (session *Session) NextBeacon(now time.Time) (beacon string, ok bool) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if !session.initialized {
		return
	}
	beacon, ok = session.builder.NextPayload(session.prefix, now.UnixMilli())
	return
}

// Opens a user action. Returns a no-op action when the session cannot report.
func (session *Session) EnterAction(name string) (action *Action) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || session.state.IsCommunicationStopped() || session.level() == protocol.DataCollectionOff {
		action = &Action{name: name}
		return
	}

	session.lastAction++
	action = &Action{
		session:  session,
		id:       session.lastAction,
		name:     name,
		startSeq: session.nextSeq(),
		start:    session.agent.clock(),
	}
	session.openActions[action.id] = action
	return
}

// Named event without a parent action
func (session *Session) ReportEvent(name string) {
	session.reportEvent(0, name)
}

func (session *Session) reportEvent(parentID int64, name string) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || session.level() != protocol.DataCollectionUserBehavior {
		return
	}
	session.builder.ReportNamedEvent(name, parentID, session.nextSeq(), session.elapsed(session.agent.clock()))
}

func (session *Session) ReportValue(name string, value any) {
	session.reportValue(0, name, value)
}

func (session *Session) reportValue(parentID int64, name string, value any) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || session.level() != protocol.DataCollectionUserBehavior {
		return
	}
	session.builder.ReportValue(name, value, parentID, session.nextSeq(), session.elapsed(session.agent.clock()))
}

func (session *Session) ReportError(name string, reason string, code int64) {
	session.reportError(0, name, reason, code)
}

func (session *Session) reportError(parentID int64, name string, reason string, code int64) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || session.level() == protocol.DataCollectionOff {
		return
	}
	session.builder.ReportError(name, reason, code, parentID, session.nextSeq(), session.elapsed(session.agent.clock()))
}

// Crashes are only reported with opt-in crash reporting
func (session *Session) ReportCrash(name string, reason string, stacktrace string) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || session.agent.app.CrashReportingLevel != protocol.CrashReportingOptIn {
		return
	}
	session.builder.ReportCrash(name, reason, stacktrace, session.nextSeq(), session.elapsed(session.agent.clock()))
	session.agent.requestFlush()
}

// Tags the session with a user; empty tags are ignored
func (session *Session) IdentifyUser(userTag string) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || userTag == "" || session.level() != protocol.DataCollectionUserBehavior {
		return
	}
	session.builder.IdentifyUser(userTag, session.nextSeq(), session.elapsed(session.agent.clock()))
	session.agent.requestFlush()
}

func (session *Session) SendBizEvent(eventType string, attrs *event.Attributes) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || session.level() != protocol.DataCollectionUserBehavior {
		return
	}
	session.builder.SendEvent(session.events.BizEvent(eventType, attrs, session.number))
}

func (session *Session) SendEvent(name string, attrs *event.Attributes) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || session.level() != protocol.DataCollectionUserBehavior {
		return
	}
	session.builder.SendEvent(session.events.CustomEvent(name, attrs, session.number))
}

// Starts timing an outbound request without a parent action
func (session *Session) TraceWebRequest(url string) (tracer *WebRequestTracer) {
	tracer = session.traceWebRequest(0, url)
	return
}

func (session *Session) traceWebRequest(parentID int64, url string) (tracer *WebRequestTracer) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.ended || session.level() == protocol.DataCollectionOff {
		tracer = &WebRequestTracer{url: url}
		return
	}

	startSeq := session.nextSeq()
	app := session.agent.app
	tracer = &WebRequestTracer{
		session:  session,
		parentID: parentID,
		url:      url,
		tag:      session.builder.WebRequestTag(parentID, session.number, startSeq, app.DeviceID, app.ApplicationID),
		startSeq: startSeq,
		start:    session.agent.clock(),
	}
	return
}

// Leaves open actions and records the session end
func (session *Session) End() {
	session.mutex.Lock()
	if session.ended {
		session.mutex.Unlock()
		return
	}
	open := make([]*Action, 0, len(session.openActions))
	for _, action := range session.openActions {
		open = append(open, action)
	}
	session.mutex.Unlock()

	for _, action := range open {
		action.Leave()
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	session.ended = true
	if session.level() == protocol.DataCollectionOff || !session.initialized {
		return
	}
	session.builder.EndSession(session.nextSeq(), session.elapsed(session.agent.clock()))
	session.agent.requestFlush()

	logctx.LogEvent(session.ctx, global.VerbosityProgress, global.InfoLog, "Session %d ended\n", session.number)
}

func (session *Session) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	collection = session.builder.CollectMetrics(interval)
	return
}
