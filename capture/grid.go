package capture

type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Pos) Add(d Direction) Pos {
	dx, dy := d.Vector()
	return Pos{p.X + dx, p.Y + dy}
}

// Grid is a width x height bitmap indexed [x][y], with y = 0 along
// the bottom row of the maze.
type Grid struct {
	width, height int
	cells         []bool
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

func (g *Grid) At(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.cells[p.X*g.height+p.Y]
}

func (g *Grid) Set(p Pos, v bool) {
	g.cells[p.X*g.height+p.Y] = v
}

func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// List returns the set cells in column-major order.
func (g *Grid) List() []Pos {
	var out []Pos
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.cells[x*g.height+y] {
				out = append(out, Pos{x, y})
			}
		}
	}
	return out
}

func (g *Grid) Copy() *Grid {
	out := &Grid{width: g.width, height: g.height, cells: make([]bool, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}
