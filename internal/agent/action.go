package agent

func (action *Action) ID() (id int64) {
	id = action.id
	return
}

func (action *Action) Name() (name string) {
	name = action.name
	return
}

// Closes the action and queues its record. Repeated calls do nothing.
func (action *Action) Leave() {
	session := action.session
	if session == nil {
		return
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	if action.left {
		return
	}
	action.left = true
	delete(session.openActions, action.id)

	now := session.agent.clock()
	session.builder.Action(action.name, action.id, action.startSeq, session.nextSeq(),
		session.elapsed(action.start), now.Sub(action.start).Milliseconds())
	session.agent.requestFlush()
}

func (action *Action) isOpen() (open bool) {
	if action.session == nil {
		return
	}
	action.session.mutex.Lock()
	defer action.session.mutex.Unlock()

	open = !action.left
	return
}

func (action *Action) ReportEvent(name string) {
	if !action.isOpen() {
		return
	}
	action.session.reportEvent(action.id, name)
}

func (action *Action) ReportValue(name string, value any) {
	if !action.isOpen() {
		return
	}
	action.session.reportValue(action.id, name, value)
}

func (action *Action) ReportError(name string, reason string, code int64) {
	if !action.isOpen() {
		return
	}
	action.session.reportError(action.id, name, reason, code)
}

// Traces a request as a child of this action
func (action *Action) TraceWebRequest(url string) (tracer *WebRequestTracer) {
	if !action.isOpen() {
		tracer = &WebRequestTracer{url: url}
		return
	}
	tracer = action.session.traceWebRequest(action.id, url)
	return
}
