package ai

import "fmt"

type Feature int

const (
	SuccessorScore Feature = iota
	SuccessorCapsule
	DistanceToFood
	CapsuleDistance
	Stop
	Reverse
	NumInvaders
	InvaderDistance
	Threat
	InvaderThreat
	InviableAttack
	InitialPos
	FrontierRush
	IsGhost
	NoisyDistance
	FrontierDistance

	MaxFeature
)

var featureStrings = [MaxFeature]string{
	SuccessorScore:   "successor_score",
	SuccessorCapsule: "successor_capsule",
	DistanceToFood:   "distance_to_food",
	CapsuleDistance:  "capsule_distance",
	Stop:             "stop",
	Reverse:          "reverse",
	NumInvaders:      "num_invaders",
	InvaderDistance:  "invader_distance",
	Threat:           "threat",
	InvaderThreat:    "invader_threat",
	InviableAttack:   "inviable_attack",
	InitialPos:       "initial_pos",
	FrontierRush:     "frontier_rush",
	IsGhost:          "is_ghost",
	NoisyDistance:    "noisy_distance",
	FrontierDistance: "frontier_distance",
}

func (f Feature) String() string {
	if f >= 0 && f < MaxFeature {
		return featureStrings[f]
	}
	return fmt.Sprintf("Feature(%d)", int(f))
}

// Features is a feature vector for one candidate action.
type Features [MaxFeature]int64

// Weights scales a Features vector into a single score.
type Weights [MaxFeature]int64

func (ws *Weights) Dot(fs *Features) int64 {
	var v int64
	for i, w := range ws {
		v += w * fs[i]
	}
	return v
}

// NonZero returns the features with a non-zero weight.
func (ws *Weights) NonZero() []Feature {
	var out []Feature
	for i, w := range ws {
		if w != 0 {
			out = append(out, Feature(i))
		}
	}
	return out
}

func boolFeature(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
