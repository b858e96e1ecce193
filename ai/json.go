package ai

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

var _ interface {
	json.Marshaler
	yaml.Marshaler
} = Weights{}

var _ interface {
	json.Unmarshaler
	yaml.Unmarshaler
} = &Weights{}

var featureNames map[string]Feature

func init() {
	featureNames = make(map[string]Feature)
	for i := Feature(0); i < MaxFeature; i++ {
		featureNames[i.String()] = i
	}
}

func (ws Weights) toMap() map[string]int64 {
	h := make(map[string]int64)
	for i, v := range ws {
		if v != 0 {
			h[Feature(i).String()] = v
		}
	}
	return h
}

// fromMap overlays h onto ws; features not named in h keep their
// current weight.
func (ws *Weights) fromMap(h map[string]int64) error {
	for k, v := range h {
		f, ok := featureNames[k]
		if !ok {
			return fmt.Errorf("unknown feature: %q", k)
		}
		ws[f] = v
	}
	return nil
}

func (ws Weights) MarshalJSON() ([]byte, error) {
	return json.Marshal(ws.toMap())
}

func (ws *Weights) UnmarshalJSON(bs []byte) error {
	h := make(map[string]int64)
	if e := json.Unmarshal(bs, &h); e != nil {
		return e
	}
	return ws.fromMap(h)
}

func (ws Weights) MarshalYAML() (interface{}, error) {
	return ws.toMap(), nil
}

func (ws *Weights) UnmarshalYAML(n *yaml.Node) error {
	h := make(map[string]int64)
	if e := n.Decode(&h); e != nil {
		return e
	}
	return ws.fromMap(h)
}

// Profile is the on-disk form of an agent's tunables. Fields left
// out of a profile keep their defaults.
type Profile struct {
	Weights RoleWeights `json:"weights" yaml:"weights"`
	Tuning  Tuning      `json:"tuning" yaml:"tuning"`
}

func DefaultProfile() Profile {
	return Profile{
		Weights: DefaultRoleWeights,
		Tuning:  DefaultTuning,
	}
}

// ParseProfile reads a YAML profile layered over the defaults.
func ParseProfile(bs []byte) (*Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(bs, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

// MarshalJSON emits the non-zero features by name.
func (fs Features) MarshalJSON() ([]byte, error) {
	return json.Marshal(Weights(fs).toMap())
}
