package capture

// State is the query surface a contest host exposes to an agent.
// Implementations must treat values as immutable: Successor returns
// a new State.
type State interface {
	Width() int
	Height() int
	Walls() *Grid

	NumAgents() int
	AgentState(agent int) *AgentState
	IsRed(agent int) bool
	RedTeam() []int
	BlueTeam() []int

	LegalActions(agent int) []Direction
	Successor(agent int, d Direction) (State, error)

	RedFood() *Grid
	BlueFood() *Grid
	RedCapsules() []Pos
	BlueCapsules() []Pos

	// Score is positive when red is ahead.
	Score() int
	TimeLeft() int
	// AgentDistances holds the noisy distance reading to every
	// agent, as sensed by the agent to move.
	AgentDistances() []int
}

func Team(s State, agent int) []int {
	if s.IsRed(agent) {
		return s.RedTeam()
	}
	return s.BlueTeam()
}

func Opponents(s State, agent int) []int {
	if s.IsRed(agent) {
		return s.BlueTeam()
	}
	return s.RedTeam()
}

// Ally returns the first teammate of agent, or -1 for a one-agent team.
func Ally(s State, agent int) int {
	for _, i := range Team(s, agent) {
		if i != agent {
			return i
		}
	}
	return -1
}

// FoodToEat returns the pellets agent's team is attacking.
func FoodToEat(s State, agent int) *Grid {
	if s.IsRed(agent) {
		return s.BlueFood()
	}
	return s.RedFood()
}

func FoodToDefend(s State, agent int) *Grid {
	if s.IsRed(agent) {
		return s.RedFood()
	}
	return s.BlueFood()
}

func CapsulesToEat(s State, agent int) []Pos {
	if s.IsRed(agent) {
		return s.BlueCapsules()
	}
	return s.RedCapsules()
}

// TeamScore returns the score from agent's team's point of view.
func TeamScore(s State, agent int) int {
	if s.IsRed(agent) {
		return s.Score()
	}
	return -s.Score()
}
