package physics

import "math"

// SpatialGrid buckets boxes by the cell holding their top-left corner and
// answers overlap queries from the 3x3 block of cells around a query box.
// The cell size must be at least the largest box side of any two boxes that
// can overlap, or pairs may be missed.
type SpatialGrid struct {
	cell       float64
	cols, rows int
	buckets    [][]entry
}

type entry struct {
	box Rect
	id  int
}

// NewSpatialGrid covers a w x h area with square cells of the given size.
func NewSpatialGrid(w, h, cell float64) *SpatialGrid {
	cols := max(1, int(math.Ceil(w/cell)))
	rows := max(1, int(math.Ceil(h/cell)))
	return &SpatialGrid{
		cell:    cell,
		cols:    cols,
		rows:    rows,
		buckets: make([][]entry, cols*rows),
	}
}

// Clear empties every bucket, keeping the memory for the next tick.
func (g *SpatialGrid) Clear() {
	for i := range g.buckets {
		g.buckets[i] = g.buckets[i][:0]
	}
}

// Insert files box under id. Boxes outside the area land in the nearest
// edge cell.
func (g *SpatialGrid) Insert(box Rect, id int) {
	i := g.bucket(box.X, box.Y)
	g.buckets[i] = append(g.buckets[i], entry{box: box, id: id})
}

// Overlapping calls fn with the id of every stored box that strictly
// intersects box. Returning true from fn stops the walk.
func (g *SpatialGrid) Overlapping(box Rect, fn func(id int) bool) {
	col, row := g.cellOf(box.X, box.Y)
	for r := max(0, row-1); r <= min(g.rows-1, row+1); r++ {
		for c := max(0, col-1); c <= min(g.cols-1, col+1); c++ {
			for _, e := range g.buckets[r*g.cols+c] {
				if e.box.Intersects(box) && fn(e.id) {
					return
				}
			}
		}
	}
}

func (g *SpatialGrid) cellOf(x, y float64) (col, row int) {
	col = min(g.cols-1, max(0, int(math.Floor(x/g.cell))))
	row = min(g.rows-1, max(0, int(math.Floor(y/g.cell))))
	return col, row
}

func (g *SpatialGrid) bucket(x, y float64) int {
	col, row := g.cellOf(x, y)
	return row*g.cols + col
}
