package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Canvas rasterizes logical coordinates onto terminal cells. Every cell holds
// two sub-pixels (upper and lower half block), each with its own Ink.
type Canvas struct {
	cols, rows int
	dots       []Ink // rows*2 lines of cols dots; InkNone is empty

	logicalW, logicalH float64
	sx, sy             float64 // dots per logical unit

	// 0-based terminal cells left blank around the canvas.
	offsetCol, offsetRow int

	pen Ink

	out     strings.Builder
	pixPts  []Point
	crossXs []float64
	shape   []Point
}

// NewScaledCanvas returns a cols x rows canvas addressed in a
// logicalW x logicalH coordinate space.
func NewScaledCanvas(cols, rows int, logicalW, logicalH float64) *Canvas {
	c := &Canvas{logicalW: logicalW, logicalH: logicalH, pen: InkPlain}
	c.Resize(cols, rows)
	return c
}

// Resize changes the terminal area while keeping the logical space.
func (c *Canvas) Resize(cols, rows int) {
	if cols != c.cols || rows != c.rows || c.dots == nil {
		c.cols, c.rows = cols, rows
		c.dots = make([]Ink, cols*rows*2)
	}
	c.sx = float64(cols) / c.logicalW
	c.sy = float64(rows*2) / c.logicalH
}

// SetOffset positions the canvas: it starts at terminal cell (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol, c.offsetRow = col, row
}

func (c *Canvas) OffsetCol() int { return c.offsetCol }
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the canvas width in columns.
func (c *Canvas) TerminalWidth() int { return c.cols }

// TerminalHeight returns the canvas height in rows.
func (c *Canvas) TerminalHeight() int { return c.rows }

// Clear empties every dot and resets the pen.
func (c *Canvas) Clear() {
	clear(c.dots)
	c.pen = InkPlain
}

// SetInk selects the ink for the following drawing calls.
func (c *Canvas) SetInk(ink Ink) {
	if ink == InkNone {
		ink = InkPlain
	}
	c.pen = ink
}

func (c *Canvas) dot(x, y int) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return
	}
	c.dots[y*c.cols+x] = c.pen
}

func (c *Canvas) toDots(x, y float64) (int, int) {
	return int(math.Round(x * c.sx)), int(math.Round(y * c.sy))
}

// DrawLine draws a one-dot line between two logical points (Bresenham).
func (c *Canvas) DrawLine(from, to Point) {
	x, y := c.toDots(from.X, from.Y)
	x2, y2 := c.toDots(to.X, to.Y)

	dx, dy := abs(x2-x), -abs(y2-y)
	stepX, stepY := 1, 1
	if x > x2 {
		stepX = -1
	}
	if y > y2 {
		stepY = -1
	}

	e := dx + dy
	for {
		c.dot(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += stepX
		}
		if e2 <= dx {
			e += dx
			y += stepY
		}
	}
}

// DrawPolygon outlines a closed polygon and optionally fills it.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	n := len(points)
	if n < 3 {
		return
	}
	if filled {
		c.fill(points)
	}
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fill paints the polygon interior with an even-odd scanline pass in dot space.
func (c *Canvas) fill(points []Point) {
	c.pixPts = c.pixPts[:0]
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		q := Point{X: p.X * c.sx, Y: p.Y * c.sy}
		top, bottom = min(top, q.Y), max(bottom, q.Y)
		c.pixPts = append(c.pixPts, q)
	}

	n := len(c.pixPts)
	for y := int(math.Floor(top)); y <= int(math.Ceil(bottom)); y++ {
		mid := float64(y) + 0.5
		c.crossXs = c.crossXs[:0]
		for i, a := range c.pixPts {
			b := c.pixPts[(i+1)%n]
			if (a.Y <= mid) == (b.Y <= mid) {
				continue
			}
			c.crossXs = append(c.crossXs, a.X+(mid-a.Y)*(b.X-a.X)/(b.Y-a.Y))
		}
		slices.Sort(c.crossXs)
		for i := 0; i+1 < len(c.crossXs); i += 2 {
			for x := int(math.Ceil(c.crossXs[i])); x <= int(math.Floor(c.crossXs[i+1])); x++ {
				c.dot(x, y)
			}
		}
	}
}

// FillRect fills a logical rectangle. Rectangles thinner than a dot still
// paint one dot.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x1, y1 := c.toDots(x, y)
	x2, y2 := c.toDots(x+w, y+h)
	x2, y2 = max(x2, x1+1), max(y2, y1+1)
	for py := y1; py < y2; py++ {
		for px := x1; px < x2; px++ {
			c.dot(px, py)
		}
	}
}

// StrokeRect outlines a logical rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	corners := [4]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		c.DrawLine(corners[i], corners[(i+1)%4])
	}
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.shape) < n {
		c.shape = make([]Point, n)
	}
	return c.shape[:n]
}

// LogicalToTerminal maps a logical point to a 1-based cell relative to the
// canvas origin.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toDots(x, y)
	return px + 1, py/2 + 1
}

// TerminalToLogical maps a 1-based screen cell, as reported by mouse events,
// to the logical point at its center. ok is false outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	px, py := col-1-c.offsetCol, row-1-c.offsetRow
	if px < 0 || py < 0 || px >= c.cols || py >= c.rows {
		return 0, 0, false
	}
	return (float64(px) + 0.5) / c.sx, float64(py*2+1) / c.sy, true
}

// maxChunkSize keeps single writes under a typical MTU for SSH sessions.
const maxChunkSize = 1400

// Render writes every non-empty cell as a colored half block.
func (c *Canvas) Render(w io.Writer) {
	c.out.Reset()
	c.out.Grow(c.cols * c.rows * 8)

	var lastFg, lastBg Ink
	for row := range c.rows {
		upper := c.dots[row*2*c.cols : (row*2+1)*c.cols]
		lower := c.dots[(row*2+1)*c.cols : (row*2+2)*c.cols]
		for col := range c.cols {
			glyph, fg, bg := cell(upper[col], lower[col])
			if glyph == 0 {
				continue
			}
			c.moveTo(col, row)
			if fg != lastFg || bg != lastBg {
				c.out.WriteString(AttrReset)
				c.out.WriteString(fg.fgCode())
				c.out.WriteString(bg.bgCode())
				lastFg, lastBg = fg, bg
			}
			c.out.WriteRune(glyph)
		}
	}
	if lastFg != InkNone {
		c.out.WriteString(AttrReset)
	}
	writeChunked(w, c.out.String())
}

// cell picks the glyph and colors for an upper/lower dot pair.
func cell(upper, lower Ink) (glyph rune, fg, bg Ink) {
	switch {
	case upper == InkNone && lower == InkNone:
		return 0, InkNone, InkNone
	case upper == lower:
		return BlockFull, upper, InkNone
	case lower == InkNone:
		return BlockUpperHalf, upper, InkNone
	case upper == InkNone:
		return BlockLowerHalf, lower, InkNone
	default:
		return BlockUpperHalf, upper, lower
	}
}

func (c *Canvas) moveTo(col, row int) {
	c.out.WriteString("\033[")
	c.out.WriteString(strconv.Itoa(row + 1 + c.offsetRow))
	c.out.WriteByte(';')
	c.out.WriteString(strconv.Itoa(col + 1 + c.offsetCol))
	c.out.WriteByte('H')
}

func writeChunked(w io.Writer, data string) {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		_, _ = io.WriteString(w, data[:n])
		data = data[n:]
	}
}

// RenderBorder frames the canvas using the blank margin left by the offset.
// Only the sides that have a margin are drawn.
func (c *Canvas) RenderBorder(w io.Writer) {
	sides := c.offsetCol >= 1
	ends := c.offsetRow >= 1
	if !sides && !ends {
		return
	}

	left, right := c.offsetCol, c.offsetCol+c.cols+1
	top, bottom := c.offsetRow, c.offsetRow+c.rows+1
	bar := strings.Repeat("─", c.cols)

	var b strings.Builder
	at := func(row, col int, s string) {
		b.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H" + s)
	}
	if ends {
		if sides {
			at(top, left, "┌"+bar+"┐")
			at(bottom, left, "└"+bar+"┘")
		} else {
			at(top, left+1, bar)
			at(bottom, left+1, bar)
		}
	}
	if sides {
		for row := top + 1; row < bottom; row++ {
			at(row, left, "│")
			at(row, right, "│")
		}
	}
	_, _ = io.WriteString(w, b.String())
}
