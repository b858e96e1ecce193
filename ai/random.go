package ai

import (
	"context"
	"math/rand"

	"github.com/pactician/pactician/capture"
)

type RandomAI struct {
	index int
	r     *rand.Rand
}

func (r *RandomAI) GetAction(_ context.Context, s capture.State) capture.Direction {
	actions := s.LegalActions(r.index)
	if len(actions) == 0 {
		return capture.Stop
	}
	return actions[r.r.Intn(len(actions))]
}

func NewRandom(index int, seed int64) Player {
	return &RandomAI{
		index: index,
		r:     rand.New(rand.NewSource(seed)),
	}
}
