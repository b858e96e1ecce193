package replay

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pactician/pactician/capture"
	"github.com/pactician/pactician/cmd/internal/opt"
	"github.com/pactician/pactician/cmd/internal/transcript"
	"github.com/pactician/pactician/logs"
)

type Command struct {
	opt     opt.Agent
	logDB   string
	game    string
	threads int
	limit   time.Duration
}

func (*Command) Name() string     { return "replay" }
func (*Command) Synopsis() string { return "Re-decide every frame of a transcript into the decision log" }
func (*Command) Usage() string {
	return `replay [options] -log-db DB FILE

Run the agent on every frame of a transcript in parallel and record
each decision in a sqlite decision log, under a new game id unless
-game is given.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.opt.AddFlags(flags)
	flags.StringVar(&c.logDB, "log-db", "", "sqlite database to record decisions in")
	flags.StringVar(&c.game, "game", "", "game id to record under")
	flags.IntVar(&c.threads, "threads", runtime.NumCPU(), "Number of threads")
	flags.DurationVar(&c.limit, "limit", time.Second, "time limit per frame")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := opt.Logger(args)
	if flag.NArg() != 1 || c.logDB == "" {
		fmt.Fprintln(os.Stderr, "Usage: replay -log-db DB FILE")
		return subcommands.ExitUsageError
	}
	if _, err := c.opt.Profile(); err != nil {
		log.Error("load profile", zap.Error(err))
		return subcommands.ExitUsageError
	}
	frames, err := transcript.Open(flag.Arg(0))
	if err != nil {
		log.Error("read transcript", zap.String("path", flag.Arg(0)), zap.Error(err))
		return subcommands.ExitFailure
	}
	if c.game == "" {
		c.game = uuid.NewString()
	}

	decisions, err := c.decide(ctx, log, frames)
	if err != nil {
		log.Error("replay", zap.Error(err))
		return subcommands.ExitFailure
	}

	repo, err := logs.Open(c.logDB)
	if err != nil {
		log.Error("open decision log", zap.String("path", c.logDB), zap.Error(err))
		return subcommands.ExitFailure
	}
	defer repo.Close()
	if err := repo.InsertDecisions(decisions); err != nil {
		log.Error("insert", zap.Error(err))
		return subcommands.ExitFailure
	}
	fmt.Printf("game %s: %d decisions\n", c.game, len(decisions))
	return subcommands.ExitSuccess
}

// decide evaluates every frame with a fresh agent, so results do not
// depend on how frames are spread across workers.
func (c *Command) decide(ctx context.Context, log *zap.Logger, frames []transcript.Frame) ([]*logs.Decision, error) {
	if _, err := c.opt.Profile(); err != nil {
		return nil, err
	}
	dists := make(map[*capture.Layout]*capture.Distancer)
	for _, f := range frames {
		if l := f.State.Layout(); dists[l] == nil {
			dists[l] = capture.NewDistancer(l.Walls)
		}
	}

	out := make([]*logs.Decision, len(frames))
	input := make(chan int)
	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer close(input)
		for i := range frames {
			select {
			case input <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	threads := c.threads
	if threads < 1 {
		threads = 1
	}
	for w := 0; w < threads; w++ {
		grp.Go(func() error {
			for i := range input {
				f := frames[i]
				l := f.State.Layout()
				a, err := c.opt.NewAgent(f.Agent, l, dists[l], log)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				fctx, cancel := context.WithTimeout(ctx, c.limit)
				d, err := a.Decide(fctx, f.State)
				cancel()
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				if out[i], err = logs.NewDecision(c.game, i, f.Agent, d); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
