package report

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/pactician/pactician/cmd/internal/opt"
	"github.com/pactician/pactician/logs"
)

type Command struct{}

func (*Command) Name() string     { return "report" }
func (*Command) Synopsis() string { return "Summarize a decision log" }
func (*Command) Usage() string {
	return `report DB [GAME]

List the games in a decision log, or break down one game's decisions
by agent, role and action.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := opt.Logger(args)
	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "Usage: report DB [GAME]")
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(flag.Arg(0))
	if err != nil {
		log.Error("open decision log", zap.String("path", flag.Arg(0)), zap.Error(err))
		return subcommands.ExitFailure
	}
	defer repo.Close()

	if flag.NArg() == 1 {
		err = listGames(os.Stdout, repo)
	} else {
		err = summarize(os.Stdout, repo, flag.Arg(1))
	}
	if err != nil {
		log.Error("report", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func listGames(out io.Writer, repo *logs.Repository) error {
	games, err := repo.Games()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 4, 8, 1, ' ', 0)
	fmt.Fprintln(w, "game\tagents\tturns\tattack%\tstarted")
	for _, g := range games {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.0f\t%s\n",
			g.Game, g.Agents, g.Turns, 100*float64(g.Attacks)/float64(g.Turns), g.Started)
	}
	return w.Flush()
}

func summarize(out io.Writer, repo *logs.Repository, game string) error {
	counts, err := repo.Summary(game)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return fmt.Errorf("no decisions for game %q", game)
	}
	w := tabwriter.NewWriter(out, 4, 8, 1, ' ', 0)
	fmt.Fprintln(w, "agent\trole\taction\tcount")
	for _, c := range counts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", c.Agent, c.Role, c.Action, c.Count)
	}
	return w.Flush()
}
