package capturetest

import (
	"github.com/pactician/pactician/capture"
)

// Small is a 10x5 maze with both teams at full strength. Red (agents
// 0 and 2) owns columns 1-4, blue (1 and 3) columns 5-8.
const Small = `
%%%%%%%%%%
%1..  o.2%
%  %  %  %
%3 .  .o4%
%%%%%%%%%%
`

// Corridor is a single open row, handy for counting distances.
const Corridor = `
%%%%%%%%%%%%
%1.. .. ..2%
%%%%%%%%%%%%
`

func Layout(text string) *capture.Layout {
	l, err := capture.ParseLayout(text)
	if err != nil {
		panic(err)
	}
	return l
}

// An Edit adjusts an observation before it is turned into a state.
type Edit func(l *capture.Layout, o *capture.Observation)

// Snapshot returns the opening position of text with edits applied.
func Snapshot(text string, timeLeft int, edits ...Edit) *capture.Snapshot {
	l := Layout(text)
	o := capture.Observe(capture.NewSnapshot(l, timeLeft))
	for _, e := range edits {
		e(l, o)
	}
	s, err := o.Snapshot(l)
	if err != nil {
		panic(err)
	}
	return s
}

// Put moves agent i to p, facing d. The pacman flag follows the side
// of the maze p is on.
func Put(i int, p capture.Pos, d capture.Direction) Edit {
	return func(l *capture.Layout, o *capture.Observation) {
		a := &o.Agents[i]
		a.Config = capture.ConfigAt(p, d)
		a.IsPacman = (i%2 == 0) != l.IsRedSide(p)
	}
}

func Hide(i int) Edit {
	return func(_ *capture.Layout, o *capture.Observation) {
		o.Agents[i].Config = nil
	}
}

func Carrying(i, n int) Edit {
	return func(_ *capture.Layout, o *capture.Observation) {
		o.Agents[i].NumCarrying = n
	}
}

func Returned(i, n int) Edit {
	return func(_ *capture.Layout, o *capture.Observation) {
		o.Agents[i].NumReturned = n
	}
}

func Scared(i, t int) Edit {
	return func(_ *capture.Layout, o *capture.Observation) {
		o.Agents[i].ScaredTimer = t
	}
}

func Score(n int) Edit {
	return func(_ *capture.Layout, o *capture.Observation) {
		o.Score = n
	}
}

func Distances(ds ...int) Edit {
	return func(_ *capture.Layout, o *capture.Observation) {
		o.Distances = ds
	}
}

// ClearFood removes every pellet except the ones listed.
func ClearFood(keep ...capture.Pos) Edit {
	return func(_ *capture.Layout, o *capture.Observation) {
		o.Food = append([]capture.Pos(nil), keep...)
	}
}

func ClearCapsules() Edit {
	return func(_ *capture.Layout, o *capture.Observation) {
		o.Capsules = nil
	}
}
