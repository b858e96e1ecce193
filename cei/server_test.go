package cei

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/pactician/pactician/ai"
	"github.com/pactician/pactician/capture"
	"github.com/pactician/pactician/capturetest"
	"github.com/pactician/pactician/logs"
)

func TestCalcBudget(t *testing.T) {
	cases := []struct {
		Move      time.Duration
		Remaining time.Duration
		Expect    time.Duration
	}{
		{0, 0, 0},
		{time.Second, 0, time.Second},
		{0, 10 * time.Second, time.Second},
		{500 * time.Millisecond, 10 * time.Second, 500 * time.Millisecond},
		{5 * time.Second, 10 * time.Second, time.Second},
	}
	for _, tc := range cases {
		got := calcBudget(tc.Move, tc.Remaining)
		assert.Equal(t, tc.Expect, got, "move=%s remaining=%s", tc.Move, tc.Remaining)
		if tc.Remaining != 0 {
			assert.Less(t, int64(got), int64(tc.Remaining))
		}
		if tc.Move != 0 {
			assert.LessOrEqual(t, int64(got), int64(tc.Move))
		}
	}
}

type session struct {
	lines []string
}

func (s *session) add(format string, v interface{}) {
	bs, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	s.lines = append(s.lines, format+" "+string(bs))
}

func (s *session) cmd(line string) { s.lines = append(s.lines, line) }

func (s *session) String() string { return strings.Join(s.lines, "\n") + "\n" }

func run(t *testing.T, e *Engine, in string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	eng := NewEngine(strings.NewReader(in), &out)
	if e != nil {
		eng.ConfigFactory = e.ConfigFactory
		eng.PlayerFactory = e.PlayerFactory
		eng.Recorder = e.Recorder
	}
	eng.Logger = zaptest.NewLogger(t)
	err := eng.Run(context.Background())
	return out.String(), err
}

func opening(t *testing.T) *session {
	s := capturetest.Snapshot(capturetest.Small, 1200)
	var sess session
	sess.cmd("ceinewgame 0 red")
	sess.add("layout", s.Layout().Rows())
	o := capture.Observe(s)
	o.Layout = nil
	sess.add("observe", o)
	return &sess
}

func TestHandshake(t *testing.T) {
	out, err := run(t, nil, "cei\nisready\nquit\nisready\n")
	require.NoError(t, err)
	assert.Equal(t, "id name Pactician\nid author The Pactician Authors\nceiok\nreadyok\n", out)
}

func TestGo(t *testing.T) {
	sess := opening(t)
	sess.cmd("go movetime 1000")
	out, err := run(t, nil, sess.String())
	require.NoError(t, err)
	assert.Equal(t, "info role attack value -20305 actions 3\nbestmove East\n", out)
}

func TestLayoutInObservation(t *testing.T) {
	s := capturetest.Snapshot(capturetest.Small, 1200)
	var sess session
	sess.cmd("ceinewgame 0")
	sess.add("observe", capture.Observe(s))
	sess.cmd("go")
	out, err := run(t, nil, sess.String())
	require.NoError(t, err)
	assert.Contains(t, out, "bestmove East\n")
}

func TestGoErrorsContinue(t *testing.T) {
	out, err := run(t, nil, "ceinewgame 1 blue\ngo\ngo movetime\nisready\n")
	require.NoError(t, err)
	assert.Equal(t, "readyok\n", out)
}

func TestProtocolErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"unknown", "frobnicate\n"},
		{"no index", "ceinewgame\n"},
		{"wrong team", "ceinewgame 1 red\n"},
		{"bad team", "ceinewgame 0 green\n"},
		{"layout first", "layout [\"%%%\"]\n"},
		{"bad layout", "ceinewgame 0\nlayout [\"%1%\",\"%x%\"]\n"},
		{"observe garbage", "ceinewgame 0\nobserve {\n"},
		{"observe no layout", "ceinewgame 0\nobserve {}\n"},
	}
	for _, tc := range cases {
		_, err := run(t, nil, tc.in)
		assert.Error(t, err, tc.name)
	}
}

func TestConfigFactory(t *testing.T) {
	var got []int
	e := &Engine{
		ConfigFactory: func(index int) (ai.Config, error) {
			got = append(got, index)
			return ai.Config{Seed: 7}, nil
		},
	}
	sess := opening(t)
	sess.cmd("go")
	_, err := run(t, e, sess.String())
	require.NoError(t, err)
	assert.Equal(t, []int{0}, got)

	e.ConfigFactory = func(int) (ai.Config, error) {
		return ai.Config{}, errors.New("no profile")
	}
	_, err = run(t, e, sess.String())
	assert.ErrorContains(t, err, "no profile")
}

func TestPlayerFactory(t *testing.T) {
	e := &Engine{
		PlayerFactory: func(index int) ai.Player { return ai.NewRandom(index, 1) },
	}
	sess := opening(t)
	sess.cmd("go")
	out, err := run(t, e, sess.String())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "bestmove "), out)
	assert.NotContains(t, out, "info")
}

type recorder struct {
	got []*logs.Decision
}

func (r *recorder) InsertDecision(d *logs.Decision) error {
	r.got = append(r.got, d)
	return nil
}

func TestRecorder(t *testing.T) {
	rec := &recorder{}
	sess := opening(t)
	sess.cmd("go")
	sess.cmd("go")
	_, err := run(t, &Engine{Recorder: rec}, sess.String())
	require.NoError(t, err)
	require.Len(t, rec.got, 2)
	assert.Equal(t, 0, rec.got[0].Turn)
	assert.Equal(t, 1, rec.got[1].Turn)
	assert.Equal(t, rec.got[0].Game, rec.got[1].Game)
	assert.Len(t, rec.got[0].Game, 36)
	assert.Equal(t, "attack", rec.got[0].Role)
	assert.Equal(t, "East", rec.got[0].Action)
	assert.EqualValues(t, -20305, rec.got[0].Value)
}

func TestClient(t *testing.T) {
	defer goleak.VerifyNone(t)

	engineOut, clientIn := io.Pipe()
	clientOut, engineIn := io.Pipe()
	e := NewEngine(engineOut, engineIn)
	e.Logger = zaptest.NewLogger(t)
	done := make(chan error, 1)
	go func() {
		done <- e.Run(context.Background())
		engineIn.Close()
	}()

	c, err := NewStreamClient(clientOut, clientIn)
	require.NoError(t, err)

	s := capturetest.Snapshot(capturetest.Small, 1200)
	p, err := c.NewGame(0, s.Layout())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Index())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	r, err := p.Move(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, &Reply{Action: capture.East, Role: "attack", Value: -20305, Actions: 3}, r)

	p2, err := c.NewGame(1, s.Layout())
	require.NoError(t, err)
	_, err = p.Move(ctx, s)
	assert.Error(t, err, "stale player")
	r, err = p2.Move(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Actions)

	c.Close()
	require.NoError(t, <-done)
	clientIn.Close()
}

func TestParseReply(t *testing.T) {
	r, err := parseReply([][]string{{"bestmove", "West"}})
	require.NoError(t, err)
	assert.Equal(t, &Reply{Action: capture.West}, r)

	_, err = parseReply([][]string{{"info", "value", "x"}, {"bestmove", "West"}})
	assert.Error(t, err)
	_, err = parseReply([][]string{{"bestmove", "Up"}})
	assert.Error(t, err)
}

func TestNewClientErrors(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)
	_, err = NewClient([]string{"pactician-engine-that-does-not-exist"})
	assert.Error(t, err)
}
