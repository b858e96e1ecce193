package capture_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pactician/pactician/capture"
	"github.com/pactician/pactician/capturetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(t *testing.T, s capture.State, i int) capture.Pos {
	t.Helper()
	p, ok := s.AgentState(i).Position()
	require.True(t, ok, "agent %d not visible", i)
	return p
}

func TestTeams(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200)
	assert.Equal(t, []int{0, 2}, s.RedTeam())
	assert.Equal(t, []int{1, 3}, s.BlueTeam())
	assert.Equal(t, 2, capture.Ally(s, 0))
	assert.Equal(t, 1, capture.Ally(s, 3))
	assert.Equal(t, []int{1, 3}, capture.Opponents(s, 2))
	assert.Equal(t, 2, capture.FoodToEat(s, 0).Count())
	assert.Equal(t, 3, capture.FoodToDefend(s, 0).Count())
	assert.Len(t, capture.CapsulesToEat(s, 0), 2)
	assert.Empty(t, capture.CapsulesToEat(s, 1))
}

func TestLegalActions(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200)
	assert.Equal(t,
		[]capture.Direction{capture.South, capture.East, capture.Stop},
		s.LegalActions(0))

	hidden := capturetest.Snapshot(capturetest.Small, 1200, capturetest.Hide(1))
	assert.Empty(t, hidden.LegalActions(1))
}

func TestSuccessorDoesNotMutate(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200)
	before := capture.Observe(s)
	next, err := s.Successor(0, capture.East)
	require.NoError(t, err)
	if d := cmp.Diff(before, capture.Observe(s)); d != "" {
		t.Errorf("receiver changed (-before +after):\n%s", d)
	}
	assert.Equal(t, capture.Pos{2, 3}, pos(t, next, 0))
	assert.Equal(t, 1199, next.TimeLeft())
}

func TestSuccessorIllegal(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200)
	_, err := s.Successor(0, capture.North)
	assert.Error(t, err)
	_, err = s.Successor(7, capture.Stop)
	assert.Error(t, err)
}

func TestSuccessorStopKeepsFacing(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200,
		capturetest.Put(0, capture.Pos{2, 3}, capture.East))
	next, err := s.Successor(0, capture.Stop)
	require.NoError(t, err)
	assert.Equal(t, capture.East, next.AgentState(0).Direction())
}

func TestSuccessorEatAndDeposit(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200,
		capturetest.Put(0, capture.Pos{5, 1}, capture.East))
	require.True(t, s.AgentState(0).IsPacman)

	eat, err := s.Successor(0, capture.East)
	require.NoError(t, err)
	me := eat.AgentState(0)
	assert.True(t, me.IsPacman)
	assert.Equal(t, 1, me.NumCarrying)
	assert.False(t, eat.BlueFood().At(capture.Pos{6, 1}))
	assert.True(t, s.BlueFood().At(capture.Pos{6, 1}), "receiver food untouched")

	back, err := eat.Successor(0, capture.West)
	require.NoError(t, err)
	home, err := back.Successor(0, capture.West)
	require.NoError(t, err)
	me = home.AgentState(0)
	assert.False(t, me.IsPacman)
	assert.Equal(t, 0, me.NumCarrying)
	assert.Equal(t, 1, me.NumReturned)
	assert.Equal(t, 1, home.Score())
}

func TestSuccessorBlueDepositScoresNegative(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200,
		capturetest.Put(1, capture.Pos{4, 3}, capture.East),
		capturetest.Carrying(1, 3))
	next, err := s.Successor(1, capture.East)
	require.NoError(t, err)
	assert.Equal(t, -3, next.Score())
	assert.Equal(t, 3, next.AgentState(1).NumReturned)
}

func TestSuccessorCapsule(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200,
		capturetest.Put(0, capture.Pos{5, 3}, capture.East))
	next, err := s.Successor(0, capture.East)
	require.NoError(t, err)
	assert.Len(t, capture.CapsulesToEat(next, 0), 1)
	assert.Equal(t, capture.ScaredTime, next.AgentState(1).ScaredTimer)
	assert.Equal(t, capture.ScaredTime, next.AgentState(3).ScaredTimer)
	assert.Equal(t, 0, next.AgentState(2).ScaredTimer)
}

func TestSuccessorCollisions(t *testing.T) {
	cases := []struct {
		name     string
		edits    []capturetest.Edit
		agent    int
		move     capture.Direction
		respawns []int
	}{
		{
			"pacman into ghost",
			[]capturetest.Edit{
				capturetest.Put(0, capture.Pos{6, 3}, capture.East),
				capturetest.Carrying(0, 2),
				capturetest.Put(1, capture.Pos{7, 3}, capture.West),
			},
			0, capture.East, []int{0},
		},
		{
			"pacman into scared ghost",
			[]capturetest.Edit{
				capturetest.Put(0, capture.Pos{6, 3}, capture.East),
				capturetest.Put(1, capture.Pos{7, 3}, capture.West),
				capturetest.Scared(1, 10),
			},
			0, capture.East, []int{1},
		},
		{
			"ghost onto pacman",
			[]capturetest.Edit{
				capturetest.Put(1, capture.Pos{4, 3}, capture.West),
				capturetest.Put(0, capture.Pos{5, 3}, capture.West),
			},
			0, capture.West, []int{1},
		},
		{
			"scared ghost onto pacman",
			[]capturetest.Edit{
				capturetest.Put(1, capture.Pos{4, 3}, capture.West),
				capturetest.Put(0, capture.Pos{5, 3}, capture.West),
				capturetest.Scared(0, 5),
			},
			0, capture.West, []int{0},
		},
	}
	for _, tc := range cases {
		s := capturetest.Snapshot(capturetest.Small, 1200, tc.edits...)
		next, err := s.Successor(tc.agent, tc.move)
		require.NoError(t, err, tc.name)
		for _, i := range tc.respawns {
			a := next.AgentState(i)
			assert.Equal(t, a.Start, pos(t, next, i), tc.name)
			assert.False(t, a.IsPacman, tc.name)
			assert.Zero(t, a.NumCarrying, tc.name)
			assert.Zero(t, a.ScaredTimer, tc.name)
		}
	}
}

func TestScaredTimerCountsDown(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200, capturetest.Scared(0, 3))
	next, err := s.Successor(0, capture.Stop)
	require.NoError(t, err)
	assert.Equal(t, 2, next.AgentState(0).ScaredTimer)
}

func TestOffGridAgent(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Corridor, 100)
	o := capture.Observe(s)
	o.Agents[0].Config = &capture.Configuration{X: 1.5, Y: 1, Dir: capture.East}
	off, err := o.Snapshot(nil)
	require.NoError(t, err)
	assert.Equal(t, []capture.Direction{capture.East}, off.LegalActions(0))
	assert.False(t, off.AgentState(0).Config.OnGrid())
}

func TestObservationRoundTrip(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 900,
		capturetest.Put(0, capture.Pos{6, 1}, capture.East),
		capturetest.Carrying(0, 2),
		capturetest.Hide(3),
		capturetest.Distances(0, 7, 2, 9),
		capturetest.Score(-2))
	bs, err := json.Marshal(capture.Observe(s))
	require.NoError(t, err)

	var o capture.Observation
	require.NoError(t, json.Unmarshal(bs, &o))
	back, err := o.Snapshot(nil)
	require.NoError(t, err)
	if d := cmp.Diff(capture.Observe(s), capture.Observe(back)); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
	_, ok := back.AgentState(3).Position()
	assert.False(t, ok)
	assert.Equal(t, []int{0, 7, 2, 9}, back.AgentDistances())
}

func TestObservationErrors(t *testing.T) {
	good := capture.Observe(capturetest.Snapshot(capturetest.Small, 1200))
	cases := []struct {
		name string
		edit func(o *capture.Observation)
	}{
		{"no layout", func(o *capture.Observation) { o.Layout = nil }},
		{"food in wall", func(o *capture.Observation) { o.Food = append(o.Food, capture.Pos{0, 0}) }},
		{"capsule outside", func(o *capture.Observation) { o.Capsules = append(o.Capsules, capture.Pos{20, 1}) }},
		{"distances", func(o *capture.Observation) { o.Distances = []int{1} }},
		{"agents", func(o *capture.Observation) { o.Agents = o.Agents[:1] }},
	}
	for _, tc := range cases {
		bs, err := json.Marshal(good)
		require.NoError(t, err)
		var o capture.Observation
		require.NoError(t, json.Unmarshal(bs, &o))
		tc.edit(&o)
		_, err = o.Snapshot(nil)
		assert.Error(t, err, tc.name)
	}
}
