package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"rumbeacon/internal/cli"
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
)

func main() {
	cliOpts := cli.DefineOptions()
	global.CmdOpts = cliOpts

	args := os.Args
	commandFlags := flag.NewFlagSet(args[0], flag.ExitOnError)
	requestedLogLevel := cli.SetGlobalArguments(commandFlags)

	commandFlags.Usage = func() {
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
	}
	if len(args) < 2 {
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
		os.Exit(1)
	}
	commandFlags.Parse(args[1:])

	command := args[1]
	args = args[2:]

	hostname, err := os.Hostname()
	if err == nil {
		global.Hostname = hostname
	}

	// Setting global logging
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := logctx.NewLogger("global", *requestedLogLevel, ctx.Done())
	ctx = logctx.WithLogger(ctx, logger)
	logctx.StartWatcher(logger, os.Stderr)

	switch command {
	case "send":
		cli.SendMode(ctx, command, args)
	case "inspect":
		cli.InspectMode(ctx, command, args)
	case "version":
		if len(args) > 0 && (args[0] == "--verbosity" || args[0] == "-v") {
			fmt.Printf("rumbeacon %s\n", global.ProgVersion)
			fmt.Printf("Built using %s(%s) for %s on %s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
		} else {
			fmt.Println(global.ProgVersion)
		}
	default:
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
		os.Exit(1)
	}

	// Finish up any pending writes for global logger
	cancel()
	logger.Wake()
	logger.Wait()
}
