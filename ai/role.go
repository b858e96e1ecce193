package ai

import (
	"math"

	"github.com/pactician/pactician/capture"
)

type Role int

const (
	Attacker Role = iota
	Defender
)

func (r Role) String() string {
	if r == Attacker {
		return "attack"
	}
	return "defense"
}

// Frontier returns the open squares of agent's team's last column
// before the midline, bottom to top.
func Frontier(s capture.State, agent int) []capture.Pos {
	mid := float64(s.Width()-1) / 2
	var x int
	if s.IsRed(agent) {
		x = int(math.Floor(mid))
	} else {
		x = int(math.Ceil(mid))
	}
	walls := s.Walls()
	var out []capture.Pos
	for y := 0; y < s.Height(); y++ {
		p := capture.Pos{X: x, Y: y}
		if !walls.At(p) {
			out = append(out, p)
		}
	}
	return out
}

// assignRole decides whether agent attacks or defends this turn.
// Early in the game the lower index attacks; afterwards the agent
// already across the midline, or failing that the one nearer the
// frontier, attacks.
func (e *evaluation) assignRole() Role {
	s, agent := e.state, e.agent
	ally := capture.Ally(s, agent)
	if ally < 0 {
		return Attacker
	}
	if s.TimeLeft() > e.tuning.OpeningTime {
		if agent < ally {
			return Attacker
		}
		return Defender
	}
	if s.AgentState(agent).IsPacman {
		return Attacker
	}
	if s.AgentState(ally).IsPacman {
		return Defender
	}
	mine := e.frontierDistance(s.AgentState(agent))
	theirs := e.frontierDistance(s.AgentState(ally))
	if mine <= theirs {
		return Attacker
	}
	return Defender
}

func (e *evaluation) frontierDistance(a *capture.AgentState) int {
	p, ok := a.Position()
	if !ok {
		return capture.Unreachable
	}
	return e.nearest(p, e.frontier)
}
