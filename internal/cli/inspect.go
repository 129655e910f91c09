package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"rumbeacon/internal/global"
	"rumbeacon/pkg/protocol"
	"strings"

	"golang.org/x/term"
)

func InspectMode(ctx context.Context, commandname string, args []string) {
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, global.CmdOpts)
	}
	commandFlags.Parse(args[0:])

	var beacon string
	if commandFlags.NArg() > 0 {
		beacon = strings.Join(commandFlags.Args(), " ")
	} else if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading beacon: %v\n", err)
			os.Exit(1)
		}
		beacon = string(data)
	} else {
		PrintHelpMenu(commandFlags, commandname, global.CmdOpts)
		os.Exit(1)
	}

	fmt.Print(formatBeacon(strings.TrimSpace(beacon)))
}

// Renders decoded fields one per line. Each event record (starting at "et")
// gets its own block after the prefix block.
func formatBeacon(beacon string) (text string) {
	keys, values := protocol.ParseFields(beacon)

	var builder strings.Builder
	for index, key := range keys {
		if key == "et" && builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(values[index])
		builder.WriteString("\n")
	}
	text = builder.String()
	return
}
