package agent

// Header value correlating the request with this session; empty for a no-op tracer
func (tracer *WebRequestTracer) Tag() (tag string) {
	tag = tracer.tag
	return
}

// Records the request. Negative values omit that field from the record.
// Repeated calls do nothing.
func (tracer *WebRequestTracer) Stop(responseCode int64, bytesSent int64, bytesReceived int64) {
	session := tracer.session
	if session == nil {
		return
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	if tracer.stopped || session.ended {
		return
	}
	tracer.stopped = true

	now := session.agent.clock()
	session.builder.WebRequest(tracer.url, tracer.parentID, tracer.startSeq, session.elapsed(tracer.start),
		session.nextSeq(), now.Sub(tracer.start).Milliseconds(), bytesSent, bytesReceived, responseCode)
}
