package sender

import (
	"context"
	"errors"
	"fmt"
	"rumbeacon/internal/agent"
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
	"rumbeacon/internal/transport"
	"runtime/debug"
	"time"
)

var errInvalidResponse = errors.New("invalid status response")

func (daemon *Daemon) runFlushLoop(ctx context.Context) {
	ticker := time.NewTicker(daemon.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			daemon.safeFlush(ctx, now)
		case <-daemon.Agent.FlushRequests():
			daemon.safeFlush(ctx, time.Now())
		}
	}
}

// Record panics and continue on next interval
func (daemon *Daemon) safeFlush(ctx context.Context, now time.Time) {
	defer func() {
		if fatalError := recover(); fatalError != nil {
			stack := debug.Stack()
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"panic in sender flush: %v\n%s", fatalError, stack)
		}
	}()

	daemon.flush(ctx, now, false)
}

// One delivery pass over every tracked session.
// Skipped while backing off unless ignoreBackoff is set.
func (daemon *Daemon) flush(ctx context.Context, now time.Time, ignoreBackoff bool) {
	daemon.flushMutex.Lock()
	defer daemon.flushMutex.Unlock()

	daemon.mutex.Lock()
	if !ignoreBackoff && now.Before(daemon.nextAttempt) {
		daemon.mutex.Unlock()
		return
	}
	sessions := append([]*agent.Session(nil), daemon.sessions...)
	daemon.mutex.Unlock()

	daemon.Metrics.Flushes.Add(1)

	for _, session := range sessions {
		err := daemon.flushSession(ctx, session, now)
		if err != nil {
			daemon.increaseBackoff(now, err)
			break
		}
	}

	daemon.pruneSessions()
}

// Sends every beacon the session has ready, applying each response
func (daemon *Daemon) flushSession(ctx context.Context, session *agent.Session, now time.Time) (err error) {
	for {
		state := session.State()
		if state.IsCommunicationStopped() {
			return
		}

		beacon, ok := session.NextBeacon(now)
		if !ok {
			return
		}

		sendCtx, cancel := context.WithTimeout(ctx, daemon.cfg.SendTimeout)
		resp, sendErr := daemon.client.SendBeacon(sendCtx, transport.StatusRequest{
			ServerID:      state.ServerID(),
			ApplicationID: daemon.cfg.App.ApplicationID,
		}, beacon)
		cancel()
		if sendErr != nil {
			daemon.Metrics.DroppedBeacons.Add(1)
			err = fmt.Errorf("failed to send beacon for session %d: %w", session.Number(), sendErr)
			return
		}

		mirrorErr := daemon.mirror.Send(beacon, now)
		if mirrorErr != nil {
			logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog, "%v\n", mirrorErr)
		}

		if !resp.Valid {
			err = fmt.Errorf("beacon for session %d: %w", session.Number(), errInvalidResponse)
			return
		}

		session.ApplyStatusResponse(resp)
		daemon.resetBackoff()
	}
}

// Doubles the wait before the next pass, bounded by the configured maximum
func (daemon *Daemon) increaseBackoff(now time.Time, cause error) {
	daemon.mutex.Lock()
	defer daemon.mutex.Unlock()

	if daemon.backoff < global.MinBackoff {
		daemon.backoff = global.MinBackoff
	} else {
		daemon.backoff *= 2
	}
	if daemon.backoff > daemon.cfg.MaxBackoff {
		daemon.backoff = daemon.cfg.MaxBackoff
	}
	daemon.nextAttempt = now.Add(daemon.backoff)
	daemon.Metrics.Backoffs.Add(1)

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
		"%v: retrying in %v\n", cause, daemon.backoff)
}

func (daemon *Daemon) resetBackoff() {
	daemon.mutex.Lock()
	defer daemon.mutex.Unlock()

	daemon.backoff = 0
	daemon.nextAttempt = time.Time{}
}

// Forgets sessions the collector stopped and ended sessions with nothing left to send
func (daemon *Daemon) pruneSessions() {
	daemon.mutex.Lock()
	defer daemon.mutex.Unlock()

	kept := daemon.sessions[:0]
	for _, session := range daemon.sessions {
		if session.State().IsCommunicationStopped() {
			daemon.Metrics.StoppedSessions.Add(1)
			logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog,
				"Session %d stopped by collector, %d records discarded\n", session.Number(), session.QueueLen())
			daemon.retire(session)
			continue
		}
		if session.IsEnded() && session.QueueLen() == 0 {
			daemon.retire(session)
			continue
		}
		kept = append(kept, session)
	}
	for index := len(kept); index < len(daemon.sessions); index++ {
		daemon.sessions[index] = nil
	}
	daemon.sessions = kept
	daemon.Metrics.ActiveSessions.Store(int64(len(daemon.sessions)))
}

// Keeps the final metrics of a session that is no longer collected
func (daemon *Daemon) retire(session *agent.Session) {
	timeSlice := daemon.Registry.NewTimeSlice(time.Now(), 0)
	daemon.Registry.Add(timeSlice, session.CollectMetrics(0))
}
