package opt

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pactician/pactician/ai"
	"github.com/pactician/pactician/capture"
)

// Agent holds the flags shared by every command that builds agents.
type Agent struct {
	Seed    int64
	Debug   int
	Weights string
	Config  string
	Random  bool

	profile *ai.Profile
}

func (o *Agent) AddFlags(flags *flag.FlagSet) {
	flags.Int64Var(&o.Seed, "seed", 0, "specify a seed")
	flags.IntVar(&o.Debug, "debug", 0, "debug level")
	flags.StringVar(&o.Weights, "weights", "", "JSON-encoded role weights, layered over -config")
	flags.StringVar(&o.Config, "config", "", "YAML agent profile")
	flags.BoolVar(&o.Random, "random", false, "play uniformly random legal actions")
}

// Profile loads -config and then -weights over the built-in
// defaults. The result is cached.
func (o *Agent) Profile() (*ai.Profile, error) {
	if o.profile != nil {
		return o.profile, nil
	}
	p := ai.DefaultProfile()
	if o.Config != "" {
		bs, err := os.ReadFile(o.Config)
		if err != nil {
			return nil, err
		}
		parsed, err := ai.ParseProfile(bs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.Config, err)
		}
		p = *parsed
	}
	if o.Weights != "" {
		if err := json.Unmarshal([]byte(o.Weights), &p.Weights); err != nil {
			return nil, fmt.Errorf("parse weights: %w", err)
		}
	}
	o.profile = &p
	return o.profile, nil
}

// BuildConfig returns the agent configuration for index.
func (o *Agent) BuildConfig(index int) (ai.Config, error) {
	p, err := o.Profile()
	if err != nil {
		return ai.Config{}, err
	}
	w, tu := p.Weights, p.Tuning
	return ai.Config{
		Index:   index,
		Seed:    o.Seed + int64(index),
		Debug:   o.Debug,
		Weights: &w,
		Tuning:  &tu,
	}, nil
}

// NewAgent builds agent index for games on l and registers it at
// its start square. dist may be shared between agents on l.
func (o *Agent) NewAgent(index int, l *capture.Layout, dist *capture.Distancer, log *zap.Logger) (*ai.SwitchAgent, error) {
	cfg, err := o.BuildConfig(index)
	if err != nil {
		return nil, err
	}
	cfg.Distancer = dist
	cfg.Logger = log
	a := ai.NewSwitchAgent(cfg)
	if err := a.RegisterInitialState(capture.NewSnapshot(l, 0)); err != nil {
		return nil, err
	}
	return a, nil
}

// PlayerFactory returns a random player factory under -random and
// nil otherwise.
func (o *Agent) PlayerFactory() func(index int) ai.Player {
	if !o.Random {
		return nil
	}
	return func(index int) ai.Player {
		return ai.NewRandom(index, o.Seed+int64(index))
	}
}

// NewLogger builds the process logger; verbose enables debug output.
func NewLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// Logger extracts the logger main passes to every command.
func Logger(args []interface{}) *zap.Logger {
	for _, a := range args {
		if l, ok := a.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
