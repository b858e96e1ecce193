package explain

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/pactician/pactician/ai"
	"github.com/pactician/pactician/capture"
	"github.com/pactician/pactician/cli"
	"github.com/pactician/pactician/cmd/internal/opt"
	"github.com/pactician/pactician/cmd/internal/transcript"
)

type Command struct {
	opt     opt.Agent
	frame   int
	quiet   bool
	unicode bool
}

func (*Command) Name() string     { return "explain" }
func (*Command) Synopsis() string { return "Show how the agent scores each frame of a transcript" }
func (*Command) Usage() string {
	return `explain [options] FILE

Render each frame of a transcript and print the role chosen, the
feature values of every legal action, and the weighted totals.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.opt.AddFlags(flags)
	flags.IntVar(&c.frame, "frame", -1, "explain only this frame")
	flags.BoolVar(&c.quiet, "quiet", false, "don't draw the maze")
	flags.BoolVar(&c.unicode, "unicode", false, "draw the maze with unicode glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := opt.Logger(args)
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: explain FILE")
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
	if c.frame >= len(frames) {
		log.Error("no such frame", zap.Int("frame", c.frame), zap.Int("frames", len(frames)))
		return subcommands.ExitUsageError
	}

	glyphs := &cli.DefaultGlyphs
	if c.unicode {
		glyphs = &cli.UnicodeGlyphs
	}
	agents := make(map[int]*ai.SwitchAgent)
	var (
		layout *capture.Layout
		dist   *capture.Distancer
	)
	for i, f := range frames {
		if l := f.State.Layout(); l != layout {
			layout, dist = l, capture.NewDistancer(l.Walls)
			agents = make(map[int]*ai.SwitchAgent)
		}
		a, ok := agents[f.Agent]
		if !ok {
			if a, err = c.opt.NewAgent(f.Agent, layout, dist, log); err != nil {
				log.Error("new agent", zap.Int("agent", f.Agent), zap.Error(err))
				return subcommands.ExitFailure
			}
			agents[f.Agent] = a
		}
		if c.frame >= 0 && i != c.frame {
			continue
		}

		fmt.Printf("frame %d\n", i)
		if !c.quiet {
			cli.RenderState(glyphs, os.Stdout, f.State)
		}
		if _, err := ai.Explain(os.Stdout, a, f.State); err != nil {
			log.Warn("explain", zap.Int("frame", i), zap.Error(err))
		}
		fmt.Println()
	}
	return subcommands.ExitSuccess
}
