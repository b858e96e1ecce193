package ai

import (
	"github.com/pactician/pactician/capture"
)

// attack extracts the attacker's features for taking act into next.
func (e *evaluation) attack(act capture.Direction, next capture.State) Features {
	var fs Features
	t := e.tuning
	prev := e.state.AgentState(e.agent)
	me := next.AgentState(e.agent)
	here, _ := me.Position()

	food := capture.FoodToEat(next, e.agent).List()
	fs[SuccessorScore] = -int64(len(food))
	if len(food) > 0 {
		fs[DistanceToFood] = int64(e.nearest(here, food))
	}
	fs[Stop] = boolFeature(act == capture.Stop)

	ghosts, pacmen := e.opponents(next, here)

	// Still on our side with an invader close by: help defend.
	if !prev.IsPacman && len(pacmen) > 0 && closest(pacmen) <= t.SightRadius {
		d := closest(pacmen)
		fs[NumInvaders] = int64(len(pacmen))
		fs[InvaderDistance] = int64(d)
		if me.ScaredTimer > 0 && d <= t.ContactRadius {
			fs[Threat] = 1
		}
	}

	// Don't cross while a dangerous ghost is watching.
	if !prev.IsPacman && me.IsPacman && len(ghosts) > 0 && closest(ghosts) <= t.SightRadius {
		for _, g := range ghosts {
			if g.state.ScaredTimer <= t.ScaredSafety {
				fs[InviableAttack] = 1
			}
		}
	}

	if len(ghosts) > 0 && closest(ghosts) <= t.ContactRadius {
		for _, g := range ghosts {
			if g.state.ScaredTimer <= t.ScaredSafety {
				fs[Threat] = 1
			}
		}
	}

	fs[SuccessorCapsule] = -int64(len(capture.CapsulesToEat(next, e.agent)))
	if caps := capture.CapsulesToEat(e.state, e.agent); len(caps) > 0 && len(ghosts) > 0 {
		d := e.nearest(here, caps)
		if d <= t.CapsuleRadius && closest(ghosts) <= t.SightRadius && minScared(ghosts) <= t.CapsuleScaredLimit {
			fs[CapsuleDistance] = int64(t.CapsuleRadius - d)
			fs[DistanceToFood] = 0
			fs[SuccessorScore] = 0
		}
	}

	// Opening: flank along the far end of the frontier.
	if e.state.TimeLeft() > t.OpeningTime && !me.IsPacman && len(e.frontier) > 0 {
		target := e.frontier[0]
		if e.red {
			target = e.frontier[len(e.frontier)-1]
		}
		fs[InitialPos] = int64(e.dist.Distance(here, target))
	}

	if prev.IsPacman && e.shouldReturn(prev) {
		fs[FrontierRush] = int64(e.nearest(here, e.frontier))
		fs[DistanceToFood] = 0
		fs[SuccessorScore] = 0
	}
	return fs
}

// shouldReturn reports whether a pacman should bank what it carries,
// judged from where it stands before moving.
func (e *evaluation) shouldReturn(prev *capture.AgentState) bool {
	t := e.tuning
	from, ok := prev.Position()
	if !ok {
		return false
	}
	carrying := prev.NumCarrying
	food := capture.FoodToEat(e.state, e.agent).List()
	toFrontier := e.nearest(from, e.frontier)

	switch {
	case carrying == 1 && capture.TeamScore(e.state, e.agent) == 0 && prev.NumReturned == 0:
		// bank the first pellet of the game
		return true
	case toFrontier <= t.FrontierEscape && carrying > 0:
		return true
	case len(food) <= t.LastFood:
		return true
	case len(food) > 0 && e.nearest(from, food)+t.FoodSlack > toFrontier && carrying >= 1:
		return true
	case carrying >= t.FullCarry:
		return true
	case e.state.TimeLeft() <= t.TimeDivisor*(toFrontier+t.TimeMargin) && carrying >= 1:
		return true
	}
	return false
}

func minScared(ss []sighting) int {
	m := ss[0].state.ScaredTimer
	for _, s := range ss[1:] {
		if s.state.ScaredTimer < m {
			m = s.state.ScaredTimer
		}
	}
	return m
}
