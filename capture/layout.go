package capture

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Layout is the static description of a maze, parsed from the
// host's layout text.
type Layout struct {
	Width, Height int

	Walls    *Grid
	Food     *Grid
	Capsules []Pos
	// Starts is indexed by agent number.
	Starts []Pos

	rows []string
}

// ParseLayout parses a maze in the host's text format: '%' is a
// wall, '.' a pellet, 'o' a capsule and '1'..'4' the start square
// of agents 0..3. The first line of text is the top of the maze.
func ParseLayout(text string) (*Layout, error) {
	var rows []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, " \r\t")
		if l == "" {
			continue
		}
		rows = append(rows, l)
	}
	return LayoutFromRows(rows)
}

func LayoutFromRows(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty layout")
	}
	width, height := len(rows[0]), len(rows)
	l := &Layout{
		Width:  width,
		Height: height,
		Walls:  NewGrid(width, height),
		Food:   NewGrid(width, height),
		rows:   append([]string(nil), rows...),
	}
	type start struct {
		n int
		p Pos
	}
	var starts []start
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d bad length: %d", i, len(row))
		}
		y := height - 1 - i
		for x, ch := range row {
			p := Pos{x, y}
			switch {
			case ch == '%':
				l.Walls.Set(p, true)
			case ch == '.':
				l.Food.Set(p, true)
			case ch == 'o':
				l.Capsules = append(l.Capsules, p)
			case ch == ' ':
			case ch >= '1' && ch <= '4':
				starts = append(starts, start{int(ch - '1'), p})
			default:
				return nil, fmt.Errorf("bad glyph %q at row %d", ch, i)
			}
		}
	}
	if len(starts) < 2 {
		return nil, fmt.Errorf("layout needs at least 2 agents, has %d", len(starts))
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].n < starts[j].n })
	for i, s := range starts {
		if s.n != i {
			return nil, fmt.Errorf("missing start for agent %d", i)
		}
		l.Starts = append(l.Starts, s.p)
	}
	return l, nil
}

// Rows returns the layout text, top row first.
func (l *Layout) Rows() []string {
	return l.rows
}

// IsRedSide reports whether p lies on the red (left) half.
func (l *Layout) IsRedSide(p Pos) bool {
	return p.X < l.Width/2
}
