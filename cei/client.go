package cei

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pactician/pactician/capture"
)

// Client drives an engine over the cei protocol.
type Client struct {
	cmd   *exec.Cmd
	stdin io.Closer

	read  *bufio.Reader
	write io.Writer

	gameid int
}

// NewClient launches cmdline and completes the handshake.
func NewClient(cmdline []string) (*Client, error) {
	if len(cmdline) == 0 {
		return nil, errors.New("empty command line")
	}
	path, err := exec.LookPath(cmdline[0])
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(path, cmdline[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", cmdline[0], err)
	}
	cl := newClient(stdout, stdin)
	cl.cmd, cl.stdin = cmd, stdin
	if err := cl.handshake(); err != nil {
		cl.Close()
		return nil, err
	}
	return cl, nil
}

// NewStreamClient speaks the protocol over an existing connection.
func NewStreamClient(r io.Reader, w io.Writer) (*Client, error) {
	cl := newClient(r, w)
	if err := cl.handshake(); err != nil {
		return nil, err
	}
	return cl, nil
}

func newClient(r io.Reader, w io.Writer) *Client {
	return &Client{
		read:  bufio.NewReader(r),
		write: w,
	}
}

func (c *Client) handshake() error {
	_, err := c.sendCommand("cei", "ceiok")
	return err
}

// NewGame starts a game as agent index on layout l. Players from
// earlier games stop working.
func (c *Client) NewGame(index int, l *capture.Layout) (*Player, error) {
	c.gameid += 1
	team := "red"
	if index%2 == 1 {
		team = "blue"
	}
	if _, err := c.sendCommand(fmt.Sprintf("ceinewgame %d %s", index, team), ""); err != nil {
		return nil, err
	}
	rows, err := json.Marshal(l.Rows())
	if err != nil {
		return nil, err
	}
	if _, err := c.sendCommand("layout "+string(rows), ""); err != nil {
		return nil, err
	}
	if _, err := c.sendCommand("isready", "readyok"); err != nil {
		return nil, fmt.Errorf("engine rejected game: %w", err)
	}
	return &Player{
		client: c,
		gameid: c.gameid,
		index:  index,
	}, nil
}

// Close ends the session. A launched engine sees end of input and
// is waited for.
func (c *Client) Close() {
	c.sendCommand("quit", "")
	if c.stdin != nil {
		c.stdin.Close()
	}
	if c.cmd != nil {
		c.cmd.Wait()
	}
}

// sendCommand writes cmd and, if expect is set, reads lines until
// one starts with expect. Every line read is returned, split into
// words.
func (c *Client) sendCommand(cmd string, expect string) ([][]string, error) {
	if _, err := fmt.Fprintln(c.write, cmd); err != nil {
		return nil, err
	}
	if expect == "" {
		return nil, nil
	}

	var lines [][]string
	for {
		line, err := c.read.ReadString('\n')
		if err != nil {
			return nil, err
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		lines = append(lines, words)
		if words[0] == expect {
			return lines, nil
		}
	}
}

// Reply is an engine's answer to go. Role is empty if the engine
// sent no info line.
type Reply struct {
	Action  capture.Direction
	Role    string
	Value   int64
	Actions int
}

type Player struct {
	client *Client
	gameid int
	index  int
}

func (p *Player) Index() int { return p.index }

// Move sends s to the engine and waits for its move. A deadline on
// ctx is passed on as the move time.
func (p *Player) Move(ctx context.Context, s *capture.Snapshot) (*Reply, error) {
	if p.gameid != p.client.gameid {
		return nil, errors.New("player belongs to a finished game")
	}
	o := capture.Observe(s)
	o.Layout = nil
	bs, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	if _, err := p.client.sendCommand("observe "+string(bs), ""); err != nil {
		return nil, fmt.Errorf("send observation: %w", err)
	}
	goCmd := "go"
	if deadline, ok := ctx.Deadline(); ok {
		goCmd = fmt.Sprintf("%s movetime %s", goCmd, formatTime(time.Until(deadline)))
	}
	lines, err := p.client.sendCommand(goCmd, "bestmove")
	if err != nil {
		return nil, err
	}
	return parseReply(lines)
}

func parseReply(lines [][]string) (*Reply, error) {
	var r Reply
	for _, words := range lines {
		switch words[0] {
		case "info":
			if err := r.parseInfo(words[1:]); err != nil {
				return nil, err
			}
		case "bestmove":
			if len(words) != 2 {
				return nil, fmt.Errorf("bad bestmove: %q", strings.Join(words, " "))
			}
			d, err := capture.ParseDirection(words[1])
			if err != nil {
				return nil, fmt.Errorf("unable to parse move: %w", err)
			}
			r.Action = d
		}
	}
	return &r, nil
}

func (r *Reply) parseInfo(words []string) error {
	for i := 0; i+1 < len(words); i += 2 {
		var err error
		switch words[i] {
		case "role":
			r.Role = words[i+1]
		case "value":
			r.Value, err = strconv.ParseInt(words[i+1], 10, 64)
		case "actions":
			r.Actions, err = strconv.Atoi(words[i+1])
		}
		if err != nil {
			return fmt.Errorf("bad info %s: %w", words[i], err)
		}
	}
	return nil
}
