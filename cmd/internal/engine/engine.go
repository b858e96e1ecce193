package engine

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/pactician/pactician/cei"
	"github.com/pactician/pactician/cmd/internal/opt"
	"github.com/pactician/pactician/logs"
)

type Command struct {
	opt   opt.Agent
	logDB string
}

func (*Command) Name() string     { return "engine" }
func (*Command) Synopsis() string { return "Run an agent over the cei protocol" }
func (*Command) Usage() string {
	return `engine [options]

Run one capture agent in cei mode on stdin/stdout, suitable for being
driven by a game host bridge or by the probe command.
`
}

func (c *Command) SetFlags(fs *flag.FlagSet) {
	c.opt.AddFlags(fs)
	fs.StringVar(&c.logDB, "log-db", "", "record decisions to this sqlite database")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := opt.Logger(args)
	if _, err := c.opt.Profile(); err != nil {
		log.Error("load profile", zap.Error(err))
		return subcommands.ExitUsageError
	}

	engine := cei.NewEngine(os.Stdin, os.Stdout)
	engine.Logger = log
	engine.ConfigFactory = c.opt.BuildConfig
	engine.PlayerFactory = c.opt.PlayerFactory()
	if c.logDB != "" {
		repo, err := logs.Open(c.logDB)
		if err != nil {
			log.Error("open decision log", zap.String("path", c.logDB), zap.Error(err))
			return subcommands.ExitFailure
		}
		defer repo.Close()
		engine.Recorder = repo
	}
	if err := engine.Run(ctx); err != nil {
		log.Error("cei", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
