package ai

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalUnmarshal(t *testing.T) {
	cases := []struct {
		in  Weights
		out string
	}{
		{Weights{}, "{}"},
		{Weights{SuccessorScore: 100}, `{"successor_score":100}`},
		{Weights{SuccessorScore: 100, Threat: -5000}, `{"successor_score":100,"threat":-5000}`},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, e := json.Marshal(&tc.in)
			if e != nil {
				t.Fatalf("Marshal(): %v", e)
			}
			if string(out) != tc.out {
				t.Fatalf("Marshal() = %q != %q", out, tc.out)
			}

			var back Weights
			e = json.Unmarshal(out, &back)
			if e != nil {
				t.Fatalf("Unmarshal(%q): %v", out, e)
			}
			for i, v := range back {
				if tc.in[i] != v {
					t.Errorf("roundtrip[%d] = %v != %v", i, v, tc.in[i])
				}
			}
		})
	}
}

func TestUnmarshalUnknownFeature(t *testing.T) {
	var ws Weights
	err := json.Unmarshal([]byte(`{"tempo": 3}`), &ws)
	assert.Error(t, err)
}

func TestRoleWeightsJSON(t *testing.T) {
	rw := DefaultRoleWeights
	bs, err := json.Marshal(&rw)
	require.NoError(t, err)

	var back RoleWeights
	require.NoError(t, json.Unmarshal(bs, &back))
	assert.Equal(t, DefaultRoleWeights, back)
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile([]byte(`
weights:
  attack:
    successor_score: 80
    stop: 0
tuning:
  full_carry: 4
`))
	require.NoError(t, err)
	assert.EqualValues(t, 80, p.Weights.Attack[SuccessorScore])
	assert.EqualValues(t, 0, p.Weights.Attack[Stop])
	assert.Equal(t, DefaultAttackWeights[Threat], p.Weights.Attack[Threat])
	assert.Equal(t, DefaultDefenseWeights, p.Weights.Defense)
	assert.Equal(t, 4, p.Tuning.FullCarry)
	assert.Equal(t, DefaultTuning.OpeningTime, p.Tuning.OpeningTime)

	_, err = ParseProfile([]byte("weights:\n  defense:\n    bogus: 1\n"))
	assert.Error(t, err)
}

func TestProfileYAMLRoundTrip(t *testing.T) {
	p := DefaultProfile()
	bs, err := yaml.Marshal(&p)
	require.NoError(t, err)
	back, err := ParseProfile(bs)
	require.NoError(t, err)
	assert.Equal(t, p, *back)
}
