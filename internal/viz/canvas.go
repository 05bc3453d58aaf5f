package viz

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Dots is the canvas size in sub-pixels.
func (c *Canvas) Dots() (w, h int) {
	return c.Width * 2, c.Height * 4
}

// Set lights the dot at (x, y) in sub-pixel coordinates. Out-of-range dots
// are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle outlines a circle with the midpoint algorithm. A radius under
// one dot draws a single dot.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Projection maps a world rectangle onto a canvas with equal scale on both
// axes, y pointing up.
type Projection struct {
	min   r2.Vec
	scale float64
	w, h  int
}

// Fit builds a projection showing every point, with a margin of 10% on each
// side. Radii extend the box around the matching centre.
func Fit(c *Canvas, points []r2.Vec, radii []float64) Projection {
	w, h := c.Dots()
	if len(points) == 0 {
		return Projection{scale: 1, w: w, h: h}
	}

	lo := r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for i, p := range points {
		r := 0.0
		if i < len(radii) {
			r = radii[i]
		}
		lo.X, lo.Y = math.Min(lo.X, p.X-r), math.Min(lo.Y, p.Y-r)
		hi.X, hi.Y = math.Max(hi.X, p.X+r), math.Max(hi.Y, p.Y+r)
	}

	span := r2.Sub(hi, lo)
	if span.X == 0 {
		span.X = 1
	}
	if span.Y == 0 {
		span.Y = 1
	}
	lo = r2.Sub(lo, r2.Scale(0.1, span))
	span = r2.Scale(1.2, span)

	scale := math.Min(float64(w-1)/span.X, float64(h-1)/span.Y)
	// centre the shorter axis
	pad := r2.Vec{
		X: (float64(w-1)/scale - span.X) / 2,
		Y: (float64(h-1)/scale - span.Y) / 2,
	}
	return Projection{min: r2.Sub(lo, pad), scale: scale, w: w, h: h}
}

// Dot returns the canvas dot of a world position.
func (p Projection) Dot(v r2.Vec) (int, int) {
	x := (v.X - p.min.X) * p.scale
	y := float64(p.h-1) - (v.Y-p.min.Y)*p.scale
	return int(math.Round(x)), int(math.Round(y))
}

// Length converts a world distance to dots.
func (p Projection) Length(d float64) int {
	return int(math.Round(d * p.scale))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
