package transcript

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactician/pactician/capture"
	"github.com/pactician/pactician/capturetest"
)

func TestRoundTrip(t *testing.T) {
	s0 := capturetest.Snapshot(capturetest.Small, 1200)
	next, err := s0.Successor(0, capture.East)
	require.NoError(t, err)
	s1 := next.(*capture.Snapshot)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Frame{{0, s0}, {1, s1}}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"layout"`)
	assert.NotContains(t, lines[1], `"layout"`)

	frames, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, 1, frames[1].Agent)
	if diff := cmp.Diff(capture.Observe(s1), capture.Observe(frames[1].State)); diff != "" {
		t.Errorf("frame 1 (-want +got):\n%s", diff)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"garbage", "{"},
		{"no observation", `{"agent": 0}`},
		{"no layout", `{"agent": 0, "observation": {"agents": [{}, {}]}}`},
		{"bad agent", `{"agent": 5, "observation": {"layout": ["%%%%", "%12%", "%%%%"], "agents": [{}, {}]}}`},
	}
	for _, tc := range cases {
		_, err := Read(strings.NewReader(tc.in))
		assert.Error(t, err, tc.name)
	}
}
