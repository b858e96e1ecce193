package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/pactician/pactician/cmd/internal/engine"
	"github.com/pactician/pactician/cmd/internal/explain"
	"github.com/pactician/pactician/cmd/internal/opt"
	"github.com/pactician/pactician/cmd/internal/probe"
	"github.com/pactician/pactician/cmd/internal/replay"
	"github.com/pactician/pactician/cmd/internal/report"
)

var verbose = flag.Bool("v", false, "log at debug level")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&engine.Command{}, "play")
	subcommands.Register(&probe.Command{}, "play")

	subcommands.Register(&explain.Command{}, "analysis")
	subcommands.Register(&replay.Command{}, "analysis")
	subcommands.Register(&report.Command{}, "analysis")

	subcommands.ImportantFlag("v")
	flag.Parse()

	logger, err := opt.NewLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	status := subcommands.Execute(ctx, logger)
	logger.Sync()
	os.Exit(int(status))
}
