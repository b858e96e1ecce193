package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/pactician/pactician/capture"
)

type Config struct {
	Index int
	Seed  int64
	Debug int

	// Weights and Tuning default to DefaultRoleWeights and
	// DefaultTuning when nil.
	Weights *RoleWeights
	Tuning  *Tuning

	// Distancer is built from the maze at registration if nil.
	Distancer *capture.Distancer
	Logger    *zap.Logger
}

// SwitchAgent is a reflex agent that re-decides every turn whether
// to attack or defend, then picks the action whose successor scores
// highest under that role's weights.
type SwitchAgent struct {
	cfg     Config
	rand    *rand.Rand
	log     *zap.Logger
	weights RoleWeights
	tuning  Tuning
	dist    *capture.Distancer

	start capture.Pos
}

var _ Player = &SwitchAgent{}

func NewSwitchAgent(cfg Config) *SwitchAgent {
	a := &SwitchAgent{
		cfg:     cfg,
		rand:    rand.New(rand.NewSource(cfg.Seed)),
		log:     cfg.Logger,
		weights: DefaultRoleWeights,
		tuning:  DefaultTuning,
		dist:    cfg.Distancer,
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	a.log = a.log.With(zap.Int("agent", cfg.Index))
	if cfg.Weights != nil {
		a.weights = *cfg.Weights
	}
	if cfg.Tuning != nil {
		a.tuning = *cfg.Tuning
	}
	return a
}

// CreateTeam builds the two agents of a team. Both run the same
// policy; roles are settled turn by turn.
func CreateTeam(first, second int, cfg Config) []*SwitchAgent {
	var out []*SwitchAgent
	for i, idx := range []int{first, second} {
		c := cfg
		c.Index = idx
		c.Seed = cfg.Seed + int64(i)
		out = append(out, NewSwitchAgent(c))
	}
	return out
}

func (a *SwitchAgent) Index() int { return a.cfg.Index }

func (a *SwitchAgent) Start() capture.Pos { return a.start }

// RegisterInitialState records where the agent starts and prepares
// maze distances for s's layout.
func (a *SwitchAgent) RegisterInitialState(s capture.State) error {
	p, ok := s.AgentState(a.cfg.Index).Position()
	if !ok {
		return fmt.Errorf("agent %d not visible at registration", a.cfg.Index)
	}
	a.start = p
	if a.dist == nil {
		a.dist = capture.NewDistancer(s.Walls())
	}
	return nil
}

// ActionScore is the evaluation of one candidate action.
type ActionScore struct {
	Action   capture.Direction
	Features Features
	Value    int64
}

type Decision struct {
	Role   Role
	Action capture.Direction
	Value  int64
	Scores []ActionScore
}

var ErrNoActions = errors.New("no legal actions")

func (a *SwitchAgent) GetAction(ctx context.Context, s capture.State) capture.Direction {
	d, err := a.Decide(ctx, s)
	if err != nil {
		a.log.Warn("decide", zap.Error(err))
		return capture.Stop
	}
	return d.Action
}

// Decide scores every legal action and picks one of the best,
// breaking ties at random. If ctx expires part way, the best action
// scored so far is returned.
func (a *SwitchAgent) Decide(ctx context.Context, s capture.State) (*Decision, error) {
	if a.dist == nil {
		if err := a.RegisterInitialState(s); err != nil {
			return nil, err
		}
	}
	actions := s.LegalActions(a.cfg.Index)
	if len(actions) == 0 {
		return nil, ErrNoActions
	}
	e := a.newEvaluation(s)
	d := &Decision{Role: e.assignRole()}
	ws := a.weights.For(d.Role)

	var best []capture.Direction
	for i, act := range actions {
		if i > 0 && ctx.Err() != nil {
			a.log.Debug("out of time", zap.Int("evaluated", i))
			break
		}
		next, err := e.successor(act)
		if err != nil {
			return nil, fmt.Errorf("successor %s: %w", act, err)
		}
		sc := ActionScore{Action: act}
		if d.Role == Attacker {
			sc.Features = e.attack(act, next)
		} else {
			sc.Features = e.defense(act, next)
		}
		sc.Value = ws.Dot(&sc.Features)
		d.Scores = append(d.Scores, sc)

		switch {
		case len(best) == 0 || sc.Value > d.Value:
			d.Value = sc.Value
			best = append(best[:0], act)
		case sc.Value == d.Value:
			best = append(best, act)
		}
	}
	d.Action = best[a.rand.Intn(len(best))]
	if a.cfg.Debug > 0 {
		a.log.Debug("decision",
			zap.Stringer("role", d.Role),
			zap.Stringer("action", d.Action),
			zap.Int64("value", d.Value),
			zap.Int("ties", len(best)))
	}
	return d, nil
}

// evaluation carries what every feature extractor needs for one
// decision.
type evaluation struct {
	state    capture.State
	agent    int
	red      bool
	frontier []capture.Pos
	dist     *capture.Distancer
	tuning   *Tuning
}

func (a *SwitchAgent) newEvaluation(s capture.State) *evaluation {
	return &evaluation{
		state:    s,
		agent:    a.cfg.Index,
		red:      s.IsRed(a.cfg.Index),
		frontier: Frontier(s, a.cfg.Index),
		dist:     a.dist,
		tuning:   &a.tuning,
	}
}

// successor applies act, stepping a second time if the first move
// left the agent between two squares.
func (e *evaluation) successor(act capture.Direction) (capture.State, error) {
	next, err := e.state.Successor(e.agent, act)
	if err != nil {
		return nil, err
	}
	if c := next.AgentState(e.agent).Config; c != nil && !c.OnGrid() {
		return next.Successor(e.agent, act)
	}
	return next, nil
}

func (e *evaluation) nearest(from capture.Pos, targets []capture.Pos) int {
	best := capture.Unreachable
	for _, t := range targets {
		if d := e.dist.Distance(from, t); d < best {
			best = d
		}
	}
	return best
}

// sighting is a visible opponent and its distance from us.
type sighting struct {
	state *capture.AgentState
	dist  int
}

func closest(ss []sighting) int {
	best := capture.Unreachable
	for _, s := range ss {
		if s.dist < best {
			best = s.dist
		}
	}
	return best
}

// opponents splits the opponents visible in s into ghosts and
// pacmen, measured from p.
func (e *evaluation) opponents(s capture.State, p capture.Pos) (ghosts, pacmen []sighting) {
	for _, o := range capture.Opponents(s, e.agent) {
		st := s.AgentState(o)
		op, ok := st.Position()
		if !ok {
			continue
		}
		sg := sighting{st, e.dist.Distance(p, op)}
		if st.IsPacman {
			pacmen = append(pacmen, sg)
		} else {
			ghosts = append(ghosts, sg)
		}
	}
	return ghosts, pacmen
}
