package cli

import (
	"flag"
	"fmt"
	"os"
	"rumbeacon/internal/global"
	"sort"
	"strings"
)

const (
	RootCLICommand  string = "root"
	helpMenuTrailer string = `
Configuration values can be overridden with RUMBEACON_* environment variables
(for example RUMBEACON_COLLECTOR_BEACON_URL).
`
	baseIndentSpaces int = 2
)

// Full standardized help menu (wraps option printer as well)
func PrintHelpMenu(fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	curCmdSet := rootCmd
	if command != "" && command != RootCLICommand {
		cmd, ok := rootCmd.ChildCommands[command]
		if !ok {
			fmt.Printf("Unknown command: %s\n", command)
			return
		}
		curCmdSet = cmd
	}

	usageParts := []string{os.Args[0]}
	if curCmdSet != rootCmd {
		usageParts = append(usageParts, curCmdSet.CommandName)
	}
	if len(curCmdSet.ChildCommands) > 0 {
		usageParts = append(usageParts, "[subcommand]")
	}
	if curCmdSet.UsageOption != "" {
		usageParts = append(usageParts, curCmdSet.UsageOption)
	}
	fmt.Printf("Usage: %s\n\n", strings.Join(usageParts, " "))

	if curCmdSet == rootCmd {
		fmt.Println(curCmdSet.Description)
		fmt.Println(curCmdSet.FullDescription)
		fmt.Println()
	} else if curCmdSet.FullDescription != "" {
		fmt.Println("  Description:")
		fmt.Printf("    %s\n\n", curCmdSet.FullDescription)
	}

	if len(curCmdSet.ChildCommands) > 0 {
		printSubcommands(curCmdSet)
	}

	printFlagOptions(fs)

	if curCmdSet == rootCmd {
		fmt.Print(helpMenuTrailer)
	}
}

func printSubcommands(cmdSet *global.CommandSet) {
	names := make([]string, 0, len(cmdSet.ChildCommands))
	maxLen := 0
	for name := range cmdSet.ChildCommands {
		names = append(names, name)
		maxLen = max(maxLen, len(name))
	}
	sort.Strings(names)

	fmt.Printf("%sSubcommands:\n", strings.Repeat(" ", baseIndentSpaces))
	for _, name := range names {
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		fmt.Printf("%s%s%s - %s\n", strings.Repeat(" ", baseIndentSpaces+2), name, padding, cmdSet.ChildCommands[name].Description)
	}
	fmt.Println()
}

// One option line: every alias of a flag sharing the same usage text
type optionLine struct {
	names      []string
	usage      string
	defaultVal string
	hasShort   bool
}

// Groups short/long aliases by usage text, short alias first
func collectOptions(fs *flag.FlagSet) (options []*optionLine) {
	byUsage := make(map[string]*optionLine)
	fs.VisitAll(func(arg *flag.Flag) {
		option, seen := byUsage[arg.Usage]
		if !seen {
			option = &optionLine{usage: arg.Usage, defaultVal: arg.DefValue}
			byUsage[arg.Usage] = option
			options = append(options, option)
		}
		if len(arg.Name) == 1 {
			option.names = append([]string{"-" + arg.Name}, option.names...)
			option.hasShort = true
		} else {
			option.names = append(option.names, "--"+arg.Name)
		}
	})

	sort.Slice(options, func(a, b int) bool {
		return strings.ToLower(options[a].names[0]) < strings.ToLower(options[b].names[0])
	})
	return
}

// Prints deduplicated flags with long-only options aligned under long aliases
func printFlagOptions(fs *flag.FlagSet) {
	const joiner = ", "
	shortOffset := len(joiner) + len("-x") // width of "-x, "

	options := collectOptions(fs)

	width := func(option *optionLine) (length int) {
		length = len(strings.Join(option.names, joiner))
		if !option.hasShort {
			length += shortOffset
		}
		return
	}

	maxLen := 0
	for _, option := range options {
		maxLen = max(maxLen, width(option))
	}

	fmt.Printf("%sOptions:\n", strings.Repeat(" ", baseIndentSpaces))
	for _, option := range options {
		indent := baseIndentSpaces
		if !option.hasShort {
			indent += shortOffset
		}

		desc := option.usage
		if option.defaultVal != "" && option.defaultVal != "false" && option.defaultVal != "0" {
			desc += fmt.Sprintf(" [default: %s]", option.defaultVal)
		}

		fmt.Printf("%s%s%s%s\n", strings.Repeat(" ", indent), strings.Join(option.names, joiner),
			strings.Repeat(" ", maxLen-width(option)+2), desc)
	}
}
