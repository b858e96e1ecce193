package ai

var DefaultAttackWeights = Weights{
	SuccessorScore:   100,
	SuccessorCapsule: 10000,
	DistanceToFood:   -1,
	InviableAttack:   -30,
	InvaderDistance:  -20,
	Threat:           -5000,
	FrontierRush:     -30,
	Stop:             -50,
	CapsuleDistance:  5,
	InitialPos:       -50,
}

var DefaultDefenseWeights = Weights{
	NumInvaders:      -1000,
	IsGhost:          100,
	InvaderDistance:  -20,
	NoisyDistance:    -2,
	FrontierDistance: -1,
	Stop:             -10,
	Reverse:          -2,
	InvaderThreat:    -1000,
	InitialPos:       -50,
}

// RoleWeights holds one weight vector per role.
type RoleWeights struct {
	Attack  Weights `json:"attack" yaml:"attack"`
	Defense Weights `json:"defense" yaml:"defense"`
}

var DefaultRoleWeights = RoleWeights{
	Attack:  DefaultAttackWeights,
	Defense: DefaultDefenseWeights,
}

func (rw *RoleWeights) For(r Role) *Weights {
	if r == Attacker {
		return &rw.Attack
	}
	return &rw.Defense
}

// Tuning collects the thresholds the feature extractors compare
// against. Distances are maze distances, times are in host moves.
type Tuning struct {
	// Before OpeningTime, roles are fixed by agent index and the
	// attacker heads for the far end of the frontier.
	OpeningTime int `json:"openingTime" yaml:"opening_time"`
	// The defender holds the near end of the frontier until
	// DefenseOpeningTime.
	DefenseOpeningTime int `json:"defenseOpeningTime" yaml:"defense_opening_time"`

	SightRadius   int `json:"sightRadius" yaml:"sight_radius"`
	ContactRadius int `json:"contactRadius" yaml:"contact_radius"`
	CapsuleRadius int `json:"capsuleRadius" yaml:"capsule_radius"`
	// Ghosts with at most ScaredSafety turns of fear left are
	// treated as dangerous.
	ScaredSafety       int `json:"scaredSafety" yaml:"scared_safety"`
	CapsuleScaredLimit int `json:"capsuleScaredLimit" yaml:"capsule_scared_limit"`

	FrontierEscape int `json:"frontierEscape" yaml:"frontier_escape"`
	FoodSlack      int `json:"foodSlack" yaml:"food_slack"`
	LastFood       int `json:"lastFood" yaml:"last_food"`
	FullCarry      int `json:"fullCarry" yaml:"full_carry"`
	TimeMargin     int `json:"timeMargin" yaml:"time_margin"`

	// A pacman carrying food heads home once TimeLeft/TimeDivisor
	// is within TimeMargin of its distance to the frontier.
	TimeDivisor int `json:"timeDivisor" yaml:"time_divisor"`
}

var DefaultTuning = Tuning{
	OpeningTime:        1000,
	DefenseOpeningTime: 1075,
	SightRadius:        5,
	ContactRadius:      1,
	CapsuleRadius:      20,
	ScaredSafety:       2,
	CapsuleScaredLimit: 4,
	FrontierEscape:     5,
	FoodSlack:          2,
	LastFood:           2,
	FullCarry:          6,
	TimeMargin:         4,
	TimeDivisor:        4,
}
