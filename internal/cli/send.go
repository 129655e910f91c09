package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"rumbeacon/internal/global"
	"rumbeacon/internal/ingest"
	"rumbeacon/internal/lifecycle"
	"rumbeacon/internal/logctx"
	"rumbeacon/internal/sender"

	"golang.org/x/term"
)

func SendMode(ctx context.Context, commandname string, args []string) {
	var configPath, inputPath, clientIP string
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath)
	commandFlags.StringVar(&inputPath, "i", "", "Read session activity from file instead of stdin")
	commandFlags.StringVar(&inputPath, "input", "", "Read session activity from file instead of stdin")
	commandFlags.StringVar(&clientIP, "client-ip", "", "Client IP address reported in the session prefix")

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, global.CmdOpts)
	}
	commandFlags.Parse(args[0:])

	input, err := openInput(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer input.Close()

	fileCfg, err := sender.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	daemonConfig, err := fileCfg.NewDaemonConf()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sendDaemon := sender.NewDaemon(daemonConfig)
	err = sendDaemon.Start(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting sending daemon: %v\n", err)
		os.Exit(1)
	}

	session, err := sendDaemon.NewSession(clientIP)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		sendDaemon.Shutdown()
		os.Exit(1)
	}

	runCtx, stop := context.WithCancel(ctx)
	go func() {
		received := lifecycle.SignalHandler(runCtx, sendDaemon)
		stop()
		if received != nil {
			// Unblocks a read waiting on the input
			input.Close()
		}
	}()

	reader := ingest.New(runCtx, session)
	err = reader.Run(runCtx, input)
	if err != nil && runCtx.Err() == nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "%v\n", err)
	}
	stop()

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Applied %d of %d input lines (%d malformed)\n",
		reader.Metrics.Applied.Load(), reader.Metrics.LinesRead.Load(), reader.Metrics.Malformed.Load())

	session.End()
	sendDaemon.Shutdown()
}

// Opens the named file, or stdin when it is piped
func openInput(path string) (input *os.File, err error) {
	if path != "" {
		input, err = os.Open(path)
		if err != nil {
			err = fmt.Errorf("failed to open input: %w", err)
		}
		return
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		err = fmt.Errorf("no input: pipe JSON lines on stdin or use --input")
		return
	}
	input = os.Stdin
	return
}
