package capture

import "math"

// Configuration is an agent's position and facing. Positions are
// continuous so a host can report an agent between two squares.
type Configuration struct {
	X   float64   `json:"x"`
	Y   float64   `json:"y"`
	Dir Direction `json:"dir"`
}

func (c Configuration) Pos() Pos {
	return Pos{int(math.Floor(c.X + 0.5)), int(math.Floor(c.Y + 0.5))}
}

func (c Configuration) OnGrid() bool {
	p := c.Pos()
	return float64(p.X) == c.X && float64(p.Y) == c.Y
}

func ConfigAt(p Pos, d Direction) *Configuration {
	return &Configuration{X: float64(p.X), Y: float64(p.Y), Dir: d}
}

type AgentState struct {
	Start Pos
	// Config is nil when the agent cannot be observed.
	Config *Configuration

	IsPacman    bool
	ScaredTimer int
	NumCarrying int
	NumReturned int
}

func (a *AgentState) Position() (Pos, bool) {
	if a.Config == nil {
		return Pos{}, false
	}
	return a.Config.Pos(), true
}

func (a *AgentState) Direction() Direction {
	if a.Config == nil {
		return Stop
	}
	return a.Config.Dir
}

func (a *AgentState) Copy() *AgentState {
	out := *a
	if a.Config != nil {
		c := *a.Config
		out.Config = &c
	}
	return &out
}
