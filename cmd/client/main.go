// Package main implements a command line client for browsing a testmail.app inbox, either
// directly or through a running tmviewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/config"
)

var (
	server       = flag.String("server", "", "URL of a running tmviewer, reads the inbox through its REST API")
	settingsPath = flag.String("settings", "", "settings file, defaults to the user config dir")
	debug        = flag.Bool("debug", false, "log requests to stderr")

	conf *config.Root

	// Replaced by tests.
	stdout        io.Writer = os.Stdout
	sourceFactory           = openSource
)

func main() {
	var err error
	conf, err = config.Process()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Important top-level flags
	subcommands.ImportantFlag("server")
	subcommands.ImportantFlag("settings")

	// Setup standard helpers
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	// Setup my commands
	subcommands.Register(&listCmd{}, "")
	subcommands.Register(&showCmd{}, "")
	subcommands.Register(&copyCmd{}, "")
	subcommands.Register(&exportCmd{}, "")
	subcommands.Register(&configCmd{}, "")

	// Parse and execute
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if *settingsPath != "" {
		conf.Settings.Path = *settingsPath
	}
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

func fatal(msg string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	return subcommands.ExitFailure
}

func usage(msg string) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, msg)
	return subcommands.ExitUsageError
}

// indexArg parses the first positional argument as an email index.
func indexArg(f *flag.FlagSet) (int, bool) {
	index, err := strconv.Atoi(f.Arg(0))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
