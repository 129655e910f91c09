package cli

import "rumbeacon/internal/global"

func DefineOptions() (cmdOpts *global.CommandSet) {
	// Root level
	root := &global.CommandSet{
		Description:     "Real User Monitoring Beacon Agent (rumbeacon)",
		FullDescription: "  Encodes monitored session activity into size-bounded beacons and delivers them to a collector",
		CommandName:     RootCLICommand,
		ChildCommands:   make(map[string]*global.CommandSet),
	}

	root.ChildCommands["send"] = &global.CommandSet{
		CommandName:     "send",
		UsageOption:     "[--input file]",
		Description:     "Send Session Activity",
		FullDescription: "Reads JSON-lines session activity, reports it into one session and delivers the resulting beacons",
	}

	root.ChildCommands["inspect"] = &global.CommandSet{
		CommandName:     "inspect",
		UsageOption:     "[beacon]",
		Description:     "Decode a Beacon",
		FullDescription: "Prints every field of a beacon (argument or stdin), one record per block",
	}

	root.ChildCommands["version"] = &global.CommandSet{
		CommandName:     "version",
		Description:     "Show Version Information",
		FullDescription: "Display meta information about program",
	}

	cmdOpts = root
	return
}
