package probe

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/pactician/pactician/cei"
	"github.com/pactician/pactician/cmd/internal/opt"
	"github.com/pactician/pactician/cmd/internal/transcript"
)

type Command struct {
	engine string
	limit  time.Duration
}

func (*Command) Name() string     { return "probe" }
func (*Command) Synopsis() string { return "Ask a cei engine for its move on every frame of a transcript" }
func (*Command) Usage() string {
	return `probe -engine "CMD ARGS..." FILE

Launch an engine, feed it each frame of a transcript, and print the
move and role it answers with.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.engine, "engine", "pactician engine", "engine command line")
	flags.DurationVar(&c.limit, "limit", time.Second, "time limit per move")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := opt.Logger(args)
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: probe -engine CMD FILE")
		return subcommands.ExitUsageError
	}
	frames, err := transcript.Open(flag.Arg(0))
	if err != nil {
		log.Error("read transcript", zap.String("path", flag.Arg(0)), zap.Error(err))
		return subcommands.ExitFailure
	}
	client, err := cei.NewClient(strings.Fields(c.engine))
	if err != nil {
		log.Error("start engine", zap.String("engine", c.engine), zap.Error(err))
		return subcommands.ExitFailure
	}
	defer client.Close()

	if err := c.probe(ctx, os.Stdout, client, frames); err != nil {
		log.Error("probe", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// probe starts a new engine game whenever the agent or layout
// changes between frames.
func (c *Command) probe(ctx context.Context, out io.Writer, client *cei.Client, frames []transcript.Frame) error {
	var (
		player *cei.Player
		prev   transcript.Frame
	)
	for i, f := range frames {
		if player == nil || f.Agent != prev.Agent || f.State.Layout() != prev.State.Layout() {
			var err error
			if player, err = client.NewGame(f.Agent, f.State.Layout()); err != nil {
				return fmt.Errorf("frame %d: new game: %w", i, err)
			}
		}
		prev = f

		mctx, cancel := context.WithTimeout(ctx, c.limit)
		r, err := player.Move(mctx, f.State)
		cancel()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if r.Role == "" {
			fmt.Fprintf(out, "%d\tagent %d\t%s\n", i, f.Agent, r.Action)
		} else {
			fmt.Fprintf(out, "%d\tagent %d\t%s\t%s\t%d\n", i, f.Agent, r.Action, r.Role, r.Value)
		}
	}
	return nil
}
