package capture

import (
	"fmt"
)

// ScaredTime is how long opponents stay scared after a capsule.
const ScaredTime = 40

// Snapshot is an observation of a game in progress. It implements
// State; Successor moves a single agent one square using the
// contest's movement, eating, scoring and collision rules, which is
// enough for an agent to look one ply ahead. The host remains the
// authority on the real next state.
type Snapshot struct {
	layout *Layout

	agents    []*AgentState
	redFood   *Grid
	blueFood  *Grid
	capsules  []Pos
	score     int
	timeLeft  int
	distances []int
}

var _ State = &Snapshot{}

// NewSnapshot returns the opening position of layout with every
// agent on its start square.
func NewSnapshot(l *Layout, timeLeft int) *Snapshot {
	s := &Snapshot{
		layout:   l,
		redFood:  NewGrid(l.Width, l.Height),
		blueFood: NewGrid(l.Width, l.Height),
		capsules: append([]Pos(nil), l.Capsules...),
		timeLeft: timeLeft,
	}
	for _, p := range l.Food.List() {
		s.foodFor(p).Set(p, true)
	}
	for _, st := range l.Starts {
		s.agents = append(s.agents, &AgentState{
			Start:  st,
			Config: ConfigAt(st, Stop),
		})
	}
	return s
}

func (s *Snapshot) Layout() *Layout { return s.layout }
func (s *Snapshot) Width() int      { return s.layout.Width }
func (s *Snapshot) Height() int     { return s.layout.Height }
func (s *Snapshot) Walls() *Grid    { return s.layout.Walls }
func (s *Snapshot) NumAgents() int  { return len(s.agents) }
func (s *Snapshot) Score() int      { return s.score }
func (s *Snapshot) TimeLeft() int   { return s.timeLeft }
func (s *Snapshot) RedFood() *Grid  { return s.redFood }
func (s *Snapshot) BlueFood() *Grid { return s.blueFood }

func (s *Snapshot) AgentState(agent int) *AgentState {
	return s.agents[agent]
}

func (s *Snapshot) IsRed(agent int) bool {
	return agent%2 == 0
}

func (s *Snapshot) RedTeam() []int  { return s.team(0) }
func (s *Snapshot) BlueTeam() []int { return s.team(1) }

func (s *Snapshot) team(parity int) []int {
	var out []int
	for i := parity; i < len(s.agents); i += 2 {
		out = append(out, i)
	}
	return out
}

func (s *Snapshot) RedCapsules() []Pos  { return s.capsulesOn(true) }
func (s *Snapshot) BlueCapsules() []Pos { return s.capsulesOn(false) }

func (s *Snapshot) capsulesOn(red bool) []Pos {
	var out []Pos
	for _, c := range s.capsules {
		if s.layout.IsRedSide(c) == red {
			out = append(out, c)
		}
	}
	return out
}

func (s *Snapshot) AgentDistances() []int {
	return s.distances
}

// SetAgentDistances records the noisy readings delivered with this
// observation.
func (s *Snapshot) SetAgentDistances(ds []int) {
	s.distances = append([]int(nil), ds...)
}

func (s *Snapshot) foodFor(p Pos) *Grid {
	if s.layout.IsRedSide(p) {
		return s.redFood
	}
	return s.blueFood
}

func (s *Snapshot) LegalActions(agent int) []Direction {
	a := s.agents[agent]
	if a.Config == nil {
		return nil
	}
	if !a.Config.OnGrid() {
		return []Direction{a.Config.Dir}
	}
	here := a.Config.Pos()
	var out []Direction
	for _, d := range AllDirections {
		next := here.Add(d)
		if s.layout.Walls.InBounds(next) && !s.layout.Walls.At(next) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Snapshot) isLegal(agent int, d Direction) bool {
	for _, l := range s.LegalActions(agent) {
		if l == d {
			return true
		}
	}
	return false
}

func (s *Snapshot) clone() *Snapshot {
	out := *s
	out.agents = make([]*AgentState, len(s.agents))
	for i, a := range s.agents {
		out.agents[i] = a.Copy()
	}
	out.capsules = append([]Pos(nil), s.capsules...)
	return &out
}

func (s *Snapshot) Successor(agent int, d Direction) (State, error) {
	if agent < 0 || agent >= len(s.agents) {
		return nil, fmt.Errorf("no such agent: %d", agent)
	}
	if !s.isLegal(agent, d) {
		return nil, fmt.Errorf("illegal action %s for agent %d", d, agent)
	}
	next := s.clone()
	next.timeLeft--
	me := next.agents[agent]
	red := next.IsRed(agent)

	p := me.Config.Pos().Add(d)
	dir := d
	if d == Stop {
		dir = me.Config.Dir
	}
	me.Config = ConfigAt(p, dir)
	me.IsPacman = red != next.layout.IsRedSide(p)

	if me.IsPacman {
		next.consume(agent, p)
	} else if me.NumCarrying > 0 {
		next.deposit(agent)
	}
	next.checkCollisions(agent)

	if me.ScaredTimer > 0 {
		me.ScaredTimer--
	}
	return next, nil
}

func (s *Snapshot) consume(agent int, p Pos) {
	me := s.agents[agent]
	food := s.foodFor(p)
	if food.At(p) {
		food = food.Copy()
		food.Set(p, false)
		if s.layout.IsRedSide(p) {
			s.redFood = food
		} else {
			s.blueFood = food
		}
		me.NumCarrying++
	}
	for i, c := range s.capsules {
		if c != p {
			continue
		}
		s.capsules = append(s.capsules[:i], s.capsules[i+1:]...)
		for _, o := range Opponents(s, agent) {
			s.agents[o].ScaredTimer = ScaredTime
		}
		break
	}
}

func (s *Snapshot) deposit(agent int) {
	me := s.agents[agent]
	if s.IsRed(agent) {
		s.score += me.NumCarrying
	} else {
		s.score -= me.NumCarrying
	}
	me.NumReturned += me.NumCarrying
	me.NumCarrying = 0
}

func (s *Snapshot) checkCollisions(agent int) {
	me := s.agents[agent]
	here := me.Config.Pos()
	for _, o := range Opponents(s, agent) {
		other := s.agents[o]
		there, ok := other.Position()
		if !ok || there != here {
			continue
		}
		switch {
		case me.IsPacman && !other.IsPacman:
			if other.ScaredTimer > 0 {
				s.respawn(o)
			} else {
				s.respawn(agent)
				return
			}
		case !me.IsPacman && other.IsPacman:
			if me.ScaredTimer > 0 {
				s.respawn(agent)
				return
			}
			s.respawn(o)
		}
	}
}

// respawn sends an agent back to its start square. Pellets it was
// carrying are lost from this snapshot's point of view.
func (s *Snapshot) respawn(agent int) {
	a := s.agents[agent]
	a.Config = ConfigAt(a.Start, Stop)
	a.IsPacman = false
	a.ScaredTimer = 0
	a.NumCarrying = 0
}
