package capture

import (
	"errors"
	"fmt"
)

// Observation is the JSON form of a Snapshot exchanged with a host
// bridge. Layout may be omitted when the receiver already knows the
// maze.
type Observation struct {
	Layout    []string           `json:"layout,omitempty"`
	Agents    []AgentObservation `json:"agents"`
	Food      []Pos              `json:"food"`
	Capsules  []Pos              `json:"capsules"`
	Score     int                `json:"score"`
	TimeLeft  int                `json:"timeLeft"`
	Distances []int              `json:"distances,omitempty"`
}

type AgentObservation struct {
	Start Pos `json:"start"`
	// Config is absent for agents the observer cannot see.
	Config      *Configuration `json:"config,omitempty"`
	IsPacman    bool           `json:"isPacman"`
	ScaredTimer int            `json:"scaredTimer"`
	NumCarrying int            `json:"numCarrying"`
	NumReturned int            `json:"numReturned"`
}

// Snapshot builds the state described by o. If l is nil the layout
// embedded in the observation is parsed.
func (o *Observation) Snapshot(l *Layout) (*Snapshot, error) {
	if l == nil {
		if len(o.Layout) == 0 {
			return nil, errors.New("observation has no layout")
		}
		var err error
		if l, err = LayoutFromRows(o.Layout); err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
	}
	if len(o.Agents) < 2 {
		return nil, fmt.Errorf("need at least 2 agents, got %d", len(o.Agents))
	}
	s := &Snapshot{
		layout:   l,
		redFood:  NewGrid(l.Width, l.Height),
		blueFood: NewGrid(l.Width, l.Height),
		score:    o.Score,
		timeLeft: o.TimeLeft,
	}
	for _, p := range o.Food {
		if !l.Walls.InBounds(p) || l.Walls.At(p) {
			return nil, fmt.Errorf("food at bad square %v", p)
		}
		s.foodFor(p).Set(p, true)
	}
	for _, p := range o.Capsules {
		if !l.Walls.InBounds(p) || l.Walls.At(p) {
			return nil, fmt.Errorf("capsule at bad square %v", p)
		}
		s.capsules = append(s.capsules, p)
	}
	for i, a := range o.Agents {
		st := &AgentState{
			Start:       a.Start,
			IsPacman:    a.IsPacman,
			ScaredTimer: a.ScaredTimer,
			NumCarrying: a.NumCarrying,
			NumReturned: a.NumReturned,
		}
		if a.Config != nil {
			c := *a.Config
			if !l.Walls.InBounds(c.Pos()) {
				return nil, fmt.Errorf("agent %d out of bounds: %v", i, c.Pos())
			}
			st.Config = &c
		}
		s.agents = append(s.agents, st)
	}
	if len(o.Distances) > 0 {
		if len(o.Distances) != len(o.Agents) {
			return nil, fmt.Errorf("got %d distances for %d agents", len(o.Distances), len(o.Agents))
		}
		s.distances = append([]int(nil), o.Distances...)
	}
	return s, nil
}

// Observe converts s to its wire form, including the layout.
func Observe(s *Snapshot) *Observation {
	o := &Observation{
		Layout:    s.layout.Rows(),
		Food:      append(s.redFood.List(), s.blueFood.List()...),
		Capsules:  append([]Pos(nil), s.capsules...),
		Score:     s.score,
		TimeLeft:  s.timeLeft,
		Distances: s.distances,
	}
	for _, a := range s.agents {
		ao := AgentObservation{
			Start:       a.Start,
			IsPacman:    a.IsPacman,
			ScaredTimer: a.ScaredTimer,
			NumCarrying: a.NumCarrying,
			NumReturned: a.NumReturned,
		}
		if a.Config != nil {
			c := *a.Config
			ao.Config = &c
		}
		o.Agents = append(o.Agents, ao)
	}
	return o
}
