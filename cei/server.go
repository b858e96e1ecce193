package cei

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pactician/pactician/ai"
	"github.com/pactician/pactician/capture"
	"github.com/pactician/pactician/logs"
)

// Recorder stores the decisions an engine makes.
type Recorder interface {
	InsertDecision(d *logs.Decision) error
}

type Engine struct {
	ConfigFactory func(index int) (ai.Config, error)
	// PlayerFactory, if set, replaces the switch agent. Such players
	// report no role or value.
	PlayerFactory func(index int) ai.Player
	Recorder      Recorder
	Logger        *zap.Logger

	in  *bufio.Reader
	out io.Writer

	game  string
	index int
	turn  int

	layout *capture.Layout
	agent  *ai.SwitchAgent
	player ai.Player
	state  *capture.Snapshot
}

func NewEngine(in io.Reader, out io.Writer) *Engine {
	return &Engine{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run reads commands until quit or end of input.
func (e *Engine) Run(ctx context.Context) error {
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	for {
		line, err := e.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		eof := err == io.EOF
		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				return nil
			}
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "cei":
			fmt.Fprintln(e.out, "id name Pactician")
			fmt.Fprintln(e.out, "id author The Pactician Authors")
			fmt.Fprintln(e.out, "ceiok")
		case "quit":
			return nil
		case "isready":
			fmt.Fprintln(e.out, "readyok")
		case "ceinewgame":
			if err := e.newGame(arg); err != nil {
				return fmt.Errorf("ceinewgame: %w", err)
			}
		case "layout":
			var rows []string
			if err := json.Unmarshal([]byte(arg), &rows); err != nil {
				return fmt.Errorf("layout: %w", err)
			}
			if err := e.setLayout(rows); err != nil {
				return fmt.Errorf("layout: %w", err)
			}
		case "observe":
			if err := e.observe(arg); err != nil {
				return fmt.Errorf("observe: %w", err)
			}
		case "go":
			if err := e.analyze(ctx, arg); err != nil {
				e.Logger.Warn("error in go", zap.Error(err))
			}
		case "stop":
		default:
			return fmt.Errorf("unknown command: %q", line)
		}
		if eof {
			return nil
		}
	}
}

func (e *Engine) newGame(arg string) error {
	words := strings.Fields(arg)
	if len(words) == 0 || len(words) > 2 {
		return errors.New("usage: ceinewgame <index> [red|blue]")
	}
	index, err := strconv.Atoi(words[0])
	if err != nil || index < 0 {
		return fmt.Errorf("bad agent index: %q", words[0])
	}
	if len(words) == 2 {
		var red bool
		switch words[1] {
		case "red":
			red = true
		case "blue":
		default:
			return fmt.Errorf("bad team: %q", words[1])
		}
		if red != (index%2 == 0) {
			return fmt.Errorf("agent %d is not on the %s team", index, words[1])
		}
	}
	*e = Engine{
		ConfigFactory: e.ConfigFactory,
		PlayerFactory: e.PlayerFactory,
		Recorder:      e.Recorder,
		Logger:        e.Logger,
		in:            e.in,
		out:           e.out,
		game:          uuid.NewString(),
		index:         index,
	}
	e.Logger.Info("new game", zap.String("game", e.game), zap.Int("agent", index))
	return nil
}

func (e *Engine) setLayout(rows []string) error {
	if e.game == "" {
		return errors.New("no game in progress")
	}
	l, err := capture.LayoutFromRows(rows)
	if err != nil {
		return err
	}
	if e.index >= len(l.Starts) {
		return fmt.Errorf("layout has %d agents, we are agent %d", len(l.Starts), e.index)
	}

	cfg := ai.Config{}
	if e.ConfigFactory != nil {
		if cfg, err = e.ConfigFactory(e.index); err != nil {
			return fmt.Errorf("agent config: %w", err)
		}
	}
	cfg.Index = e.index
	cfg.Distancer = capture.NewDistancer(l.Walls)
	if cfg.Logger == nil {
		cfg.Logger = e.Logger
	}
	agent := ai.NewSwitchAgent(cfg)
	if err := agent.RegisterInitialState(capture.NewSnapshot(l, 0)); err != nil {
		return err
	}
	e.layout = l
	e.agent = agent
	e.player = nil
	if e.PlayerFactory != nil {
		e.player = e.PlayerFactory(e.index)
	}
	e.state = nil
	return nil
}

func (e *Engine) observe(arg string) error {
	var o capture.Observation
	if err := json.Unmarshal([]byte(arg), &o); err != nil {
		return err
	}
	if e.layout == nil {
		if len(o.Layout) == 0 {
			return errors.New("no layout")
		}
		if err := e.setLayout(o.Layout); err != nil {
			return err
		}
	}
	s, err := o.Snapshot(e.layout)
	if err != nil {
		return err
	}
	if e.index >= s.NumAgents() {
		return fmt.Errorf("observation has %d agents, we are agent %d", s.NumAgents(), e.index)
	}
	e.state = s
	return nil
}

func parseGo(arg string) (move, remaining time.Duration, err error) {
	words := strings.Fields(arg)
	if len(words)%2 != 0 {
		return 0, 0, errors.New("expected [movetime N] [timeleft N]")
	}
	for i := 0; i < len(words); i += 2 {
		ms, err := strconv.ParseUint(words[i+1], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("bad ms: %v", words[i+1])
		}
		d := time.Duration(ms) * time.Millisecond
		switch words[i] {
		case "movetime":
			move = d
		case "timeleft":
			remaining = d
		default:
			return 0, 0, fmt.Errorf("unknown go option: %q", words[i])
		}
	}
	return move, remaining, nil
}

func (e *Engine) analyze(ctx context.Context, arg string) error {
	if e.state == nil {
		return errors.New("no observation provided")
	}
	move, remaining, err := parseGo(arg)
	if err != nil {
		return err
	}
	if budget := calcBudget(move, remaining); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	if e.player != nil {
		fmt.Fprintf(e.out, "bestmove %s\n", e.player.GetAction(ctx, e.state))
		return nil
	}

	d, err := e.agent.Decide(ctx, e.state)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "info role %s value %d actions %d\n",
		d.Role, d.Value, len(d.Scores))
	fmt.Fprintf(e.out, "bestmove %s\n", d.Action)

	turn := e.turn
	e.turn++
	if e.Recorder != nil {
		rec, err := logs.NewDecision(e.game, turn, e.index, d)
		if err == nil {
			err = e.Recorder.InsertDecision(rec)
		}
		if err != nil {
			e.Logger.Warn("record decision", zap.Error(err))
		}
	}
	return nil
}
