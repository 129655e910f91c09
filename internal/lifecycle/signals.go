package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
	"syscall"
)

type DaemonLike interface {
	Refresh(ctx context.Context) (err error)
}

// Handles incoming signals until a termination signal arrives or ctx is done.
// SIGHUP re-requests the collector status instead of terminating.
func SignalHandler(ctx context.Context, daemon DaemonLike) (received os.Signal) {
	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	received = handleSignals(ctx, daemon, sigChan)
	return
}

func handleSignals(ctx context.Context, daemon DaemonLike, sigChan <-chan os.Signal) (received os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigChan:
			logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "Received signal: %v\n", sig)

			if sig != syscall.SIGHUP {
				received = sig
				err := NotifyStopping(ctx)
				if err != nil {
					logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Systemd notify stopping failed: %v\n", err)
				}
				return
			}

			refresh(ctx, daemon)
		}
	}
}

func refresh(ctx context.Context, daemon DaemonLike) {
	err := NotifyReload(ctx)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Systemd notify reload failed: %v\n", err)
	}

	err = daemon.Refresh(ctx)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "Status refresh failed: %v\n", err)

		err = NotifyStatus(ctx, "Status refresh failed. Check daemon logs.")
		if err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Systemd notify status failed: %v\n", err)
		}
	}

	err = NotifyReady(ctx)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Systemd notify ready failed: %v\n", err)
	}
}
