package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactician/pactician/logs"
)

func TestReport(t *testing.T) {
	repo, err := logs.Open(filepath.Join(t.TempDir(), "log.db"))
	require.NoError(t, err)
	defer repo.Close()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertDecisions([]*logs.Decision{
		{Game: "g1", Turn: 0, Agent: 0, Role: "attack", Action: "East", Features: "{}", Time: now},
		{Game: "g1", Turn: 1, Agent: 0, Role: "defense", Action: "West", Features: "{}", Time: now},
	}))

	var buf bytes.Buffer
	require.NoError(t, listGames(&buf, repo))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"g1", "1", "2", "50"}, strings.Fields(lines[1])[:4])

	buf.Reset()
	require.NoError(t, summarize(&buf, repo, "g1"))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"agent role    action count",
		"0     attack  East   1",
		"0     defense West   1",
	}, lines)

	assert.Error(t, summarize(&buf, repo, "nope"))
}
