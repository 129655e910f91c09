package cli

import (
	"flag"
	"rumbeacon/internal/global"
)

func SetGlobalArguments(fs *flag.FlagSet) (requestedLevel *int) {
	fs.IntVar(&global.Verbosity, "v", 1, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	fs.IntVar(&global.Verbosity, "verbosity", 1, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	requestedLevel = &global.Verbosity
	return
}

func SetCommon(fs *flag.FlagSet, configPath *string) {
	fs.StringVar(configPath, "c", global.DefaultConfigPath, "Path to the configuration file (JSON or YAML, empty for environment only)")
	fs.StringVar(configPath, "config", global.DefaultConfigPath, "Path to the configuration file (JSON or YAML, empty for environment only)")
}
