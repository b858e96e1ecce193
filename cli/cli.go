package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pactician/pactician/capture"
)

// Glyphs maps maze contents to the strings used to draw them. Ghosts
// and Pacmen are indexed by agent; agents past the end use the last
// entry.
type Glyphs struct {
	Wall    string
	Food    string
	Capsule string
	Empty   string

	Ghosts []string
	Pacmen []string
}

var DefaultGlyphs = Glyphs{
	Wall:    "%",
	Food:    ".",
	Capsule: "o",
	Empty:   " ",
	Ghosts:  []string{"1", "2", "3", "4"},
	Pacmen:  []string{"A", "B", "C", "D"},
}

var UnicodeGlyphs = Glyphs{
	Wall:    "█",
	Food:    "·",
	Capsule: "●",
	Empty:   " ",
	Ghosts:  []string{"①", "②", "③", "④"},
	Pacmen:  []string{"Ⓐ", "Ⓑ", "Ⓒ", "Ⓓ"},
}

func pick(gs []string, i int) string {
	if i < len(gs) {
		return gs[i]
	}
	return gs[len(gs)-1]
}

// RenderState draws the maze of s, top row first, followed by the
// score and a table of agents.
func RenderState(g *Glyphs, out io.Writer, s capture.State) {
	if g == nil {
		g = &DefaultGlyphs
	}
	w, h := s.Width(), s.Height()
	cells := make([][]string, h)
	for y := range cells {
		cells[y] = make([]string, w)
		for x := range cells[y] {
			p := capture.Pos{X: x, Y: y}
			switch {
			case s.Walls().At(p):
				cells[y][x] = g.Wall
			case s.RedFood().At(p) || s.BlueFood().At(p):
				cells[y][x] = g.Food
			default:
				cells[y][x] = g.Empty
			}
		}
	}
	for _, p := range append(s.RedCapsules(), s.BlueCapsules()...) {
		cells[p.Y][p.X] = g.Capsule
	}
	for i := 0; i < s.NumAgents(); i++ {
		st := s.AgentState(i)
		p, ok := st.Position()
		if !ok || p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
			continue
		}
		if st.IsPacman {
			cells[p.Y][p.X] = pick(g.Pacmen, i)
		} else {
			cells[p.Y][p.X] = pick(g.Ghosts, i)
		}
	}
	for y := h - 1; y >= 0; y-- {
		fmt.Fprintln(out, strings.Join(cells[y], ""))
	}

	fmt.Fprintf(out, "score %d time %d\n", s.Score(), s.TimeLeft())
	tw := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "agent\tteam\tpos\tkind\tcarrying\treturned\tscared")
	for i := 0; i < s.NumAgents(); i++ {
		st := s.AgentState(i)
		team := "blue"
		if s.IsRed(i) {
			team = "red"
		}
		pos := "?"
		if p, ok := st.Position(); ok {
			pos = fmt.Sprintf("(%d,%d)", p.X, p.Y)
		}
		kind := "ghost"
		if st.IsPacman {
			kind = "pacman"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\n",
			i, team, pos, kind, st.NumCarrying, st.NumReturned, st.ScaredTimer)
	}
	tw.Flush()
}
