package ai

import (
	"github.com/pactician/pactician/capture"
)

// defense extracts the defender's features for taking act into next.
func (e *evaluation) defense(act capture.Direction, next capture.State) Features {
	var fs Features
	t := e.tuning
	me := next.AgentState(e.agent)
	here, _ := me.Position()

	fs[IsGhost] = boolFeature(!me.IsPacman)

	_, invaders := e.opponents(next, here)
	fs[NumInvaders] = int64(len(invaders))
	if len(invaders) > 0 {
		d := closest(invaders)
		fs[InvaderDistance] = int64(d)
		// Scared: shadow the invader without touching it.
		if me.ScaredTimer > 0 && d <= t.ContactRadius {
			fs[InvaderThreat] = 1
		}
	}

	fs[Stop] = boolFeature(act == capture.Stop)
	rev := e.state.AgentState(e.agent).Direction().Reverse()
	fs[Reverse] = boolFeature(act == rev)

	if readings := e.state.AgentDistances(); len(readings) > 0 {
		noisy := capture.Unreachable
		for _, o := range capture.Opponents(e.state, e.agent) {
			if o < len(readings) && readings[o] < noisy {
				noisy = readings[o]
			}
		}
		if noisy != capture.Unreachable {
			fs[NoisyDistance] = int64(noisy)
		}
	}

	fs[FrontierDistance] = int64(e.nearest(here, e.frontier))

	// Opening: hold the end of the frontier the attacker isn't using.
	if e.state.TimeLeft() > t.DefenseOpeningTime && !me.IsPacman && len(e.frontier) > 0 {
		target := e.frontier[len(e.frontier)-1]
		if e.red {
			target = e.frontier[0]
		}
		fs[InitialPos] = int64(e.dist.Distance(here, target))
	}
	return fs
}
