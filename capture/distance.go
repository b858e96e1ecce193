package capture

// Unreachable is the distance reported between cells that have no
// path between them.
const Unreachable = 1 << 20

// Distancer answers maze-distance queries from a table precomputed
// by breadth-first search from every open cell.
type Distancer struct {
	walls *Grid
	index []int32
	open  int
	dist  []int32
}

func NewDistancer(walls *Grid) *Distancer {
	d := &Distancer{walls: walls}
	w, h := walls.Width(), walls.Height()
	d.index = make([]int32, w*h)
	var cells []Pos
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			p := Pos{x, y}
			if walls.At(p) {
				d.index[x*h+y] = -1
				continue
			}
			d.index[x*h+y] = int32(len(cells))
			cells = append(cells, p)
		}
	}
	d.open = len(cells)
	d.dist = make([]int32, d.open*d.open)
	for i := range d.dist {
		d.dist[i] = -1
	}
	queue := make([]Pos, 0, d.open)
	for src, p := range cells {
		row := d.dist[src*d.open : (src+1)*d.open]
		row[src] = 0
		queue = append(queue[:0], p)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			base := row[d.idx(cur)]
			for _, dir := range AllDirections[:4] {
				n := cur.Add(dir)
				if !walls.InBounds(n) || walls.At(n) {
					continue
				}
				ni := d.idx(n)
				if row[ni] >= 0 {
					continue
				}
				row[ni] = base + 1
				queue = append(queue, n)
			}
		}
	}
	return d
}

func (d *Distancer) idx(p Pos) int32 {
	return d.index[p.X*d.walls.Height()+p.Y]
}

// Distance returns the maze distance between a and b.
func (d *Distancer) Distance(a, b Pos) int {
	if !d.walls.InBounds(a) || !d.walls.InBounds(b) {
		return Unreachable
	}
	ai, bi := d.idx(a), d.idx(b)
	if ai < 0 || bi < 0 {
		return Unreachable
	}
	v := d.dist[int(ai)*d.open+int(bi)]
	if v < 0 {
		return Unreachable
	}
	return int(v)
}
