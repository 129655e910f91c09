// Daemon delivering session beacons to the collector on a flush interval
package sender

import (
	"context"
	"fmt"
	"os"
	"rumbeacon/internal/agent"
	"rumbeacon/internal/commstate"
	"rumbeacon/internal/global"
	"rumbeacon/internal/lifecycle"
	"rumbeacon/internal/logctx"
	"rumbeacon/internal/metrics"
	"rumbeacon/internal/transport"
	"time"
)

// Create new sending daemon instance
func NewDaemon(cfg Config) (new *Daemon) {
	ctx, cancel := context.WithCancel(context.Background())
	new = &Daemon{
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		Registry: metrics.New(),
		Metrics:  &MetricStorage{},
	}
	return
}

// Starts flush and metric workers in background after the first status request.
// An unreachable collector is not fatal, the defaults apply until a beacon response arrives.
func (daemon *Daemon) Start(globalCtx context.Context) (err error) {
	// New context for the daemon
	daemon.ctx, daemon.cancel = context.WithCancel(context.Background())
	daemon.ctx = logctx.WithLogger(daemon.ctx, logctx.GetLogger(globalCtx))
	daemon.ctx = logctx.AppendCtxTag(daemon.ctx, global.NSSend)
	daemon.Namespace = logctx.GetTagList(daemon.ctx)

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog, "Starting...\n")

	err = daemon.cfg.Validate()
	if err != nil {
		err = fmt.Errorf("invalid configuration: %w", err)
		return
	}
	err = daemon.cfg.setDefaults()
	if err != nil {
		return
	}

	if daemon.client == nil {
		daemon.client, err = transport.NewHTTPClient(daemon.Namespace, daemon.cfg.BeaconURL, daemon.cfg.SendTimeout)
		if err != nil {
			err = fmt.Errorf("failed to create collector client: %w", err)
			return
		}
	}

	daemon.mirror, err = transport.NewBeatsMirror(daemon.Namespace, daemon.cfg.MirrorEndpoint)
	if err != nil {
		err = fmt.Errorf("failed to create beats mirror: %w", err)
		return
	}

	daemon.Agent = agent.New(daemon.ctx, agent.Config{
		App:           daemon.cfg.App,
		Supplementary: daemon.cfg.Supplementary,
	})

	err = daemon.Refresh(daemon.ctx)
	if err != nil {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"initial status request failed, continuing with defaults: %v\n", err)
		err = nil
	}

	workerCtx := daemon.ctx
	daemon.wg.Add(2)
	go func() {
		defer daemon.wg.Done()
		daemon.runFlushLoop(workerCtx)
	}()
	go func() {
		defer daemon.wg.Done()
		daemon.runMetrics(workerCtx)
	}()

	err = lifecycle.NotifyReady(daemon.ctx)
	if err != nil {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"systemd readiness notification failed: %v\n", err)
		err = nil
	}

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog, "Startup complete.\n")
	return
}

// Re-requests the application status from the collector
func (daemon *Daemon) Refresh(ctx context.Context) (err error) {
	state := daemon.Agent.State()

	requestCtx, cancel := context.WithTimeout(ctx, daemon.cfg.SendTimeout)
	defer cancel()

	resp, err := daemon.client.SendStatusRequest(requestCtx, transport.StatusRequest{
		ServerID:      state.ServerID(),
		ApplicationID: daemon.cfg.App.ApplicationID,
	})
	if err != nil {
		err = fmt.Errorf("failed status request: %w", err)
		return
	}
	if !resp.Valid {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"collector returned an invalid status response, keeping current state\n")
		return
	}

	daemon.Agent.ApplyStatusResponse(resp)
	return
}

// Opens a session and initializes it with a new-session status request
func (daemon *Daemon) NewSession(clientIP string) (session *agent.Session, err error) {
	session, err = daemon.Agent.NewSession(clientIP)
	if err != nil {
		return
	}

	state := daemon.Agent.State()
	requestCtx, cancel := context.WithTimeout(daemon.ctx, daemon.cfg.SendTimeout)
	defer cancel()

	resp, reqErr := daemon.client.SendStatusRequest(requestCtx, transport.StatusRequest{
		ServerID:      state.ServerID(),
		ApplicationID: daemon.cfg.App.ApplicationID,
	})
	if reqErr != nil {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"new session request failed for session %d, using application state: %v\n", session.Number(), reqErr)
		resp = commstate.StatusResponse{}
	}
	session.Init(resp)

	daemon.mutex.Lock()
	daemon.sessions = append(daemon.sessions, session)
	daemon.Metrics.ActiveSessions.Store(int64(len(daemon.sessions)))
	daemon.mutex.Unlock()
	return
}

// Number of sessions still tracked for delivery
func (daemon *Daemon) SessionCount() (count int) {
	daemon.mutex.Lock()
	defer daemon.mutex.Unlock()

	count = len(daemon.sessions)
	return
}

// Blocking daemon waiter
func (daemon *Daemon) Run() {
	<-daemon.ctx.Done()
}

// Stops workers, ends every session and sends what is left
func (daemon *Daemon) Shutdown() {
	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"Daemon shutdown started...\n")

	// Stop workers before the final drain so only one flush runs
	daemon.cancel()

	done := make(chan struct{})
	go func() {
		daemon.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(global.SendShutdownTimeout):
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"Timeout: send workers did not stop within %v seconds\n", global.SendShutdownTimeout.Seconds())
	}

	daemon.mutex.Lock()
	sessions := append([]*agent.Session(nil), daemon.sessions...)
	daemon.mutex.Unlock()
	for _, session := range sessions {
		session.End()
	}

	if daemon.client != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), global.SendShutdownTimeout)
		daemon.flush(drainCtx, time.Now(), true)
		cancel()
	}

	daemon.mutex.Lock()
	remaining := 0
	for _, session := range daemon.sessions {
		remaining += session.QueueLen()
	}
	daemon.mutex.Unlock()
	if remaining > 0 {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"shutdown drain incomplete: dropped %d queued records\n", remaining)
	}

	err := daemon.mirror.Close()
	if err != nil {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"beats mirror did not close gracefully: %v\n", err)
	}

	daemon.exportMetrics()

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"Daemon shutdown completed successfully\n")
}

// Writes every retained metric to the configured export path
func (daemon *Daemon) exportMetrics() {
	if daemon.cfg.MetricExportPath == "" {
		return
	}

	daemon.collectMetrics(daemon.ctx, time.Now(), 0)

	file, err := os.Create(daemon.cfg.MetricExportPath)
	if err != nil {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"failed to create metric export file: %v\n", err)
		return
	}
	defer file.Close()

	err = metrics.Export(file, daemon.Registry.Search("", nil, time.Time{}, time.Time{}))
	if err != nil {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"failed to export metrics: %v\n", err)
	}
}
