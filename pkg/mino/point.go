package mino

import (
	"strconv"
	"strings"
)

// Point is a board coordinate or an offset. X grows to the right and Y grows
// downwards, so row 0 is the top of the board.
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// RotateCCW rotates p a quarter turn counter-clockwise around c.
func (p Point) RotateCCW(c Point) Point {
	d := p.Sub(c)
	return Point{c.X - d.Y, c.Y + d.X}
}

// Below returns the point directly underneath p.
func (p Point) Below() Point { return Point{p.X, p.Y + 1} }

func (p Point) String() string {
	var b strings.Builder
	b.WriteRune('(')
	b.WriteString(strconv.Itoa(p.X))
	b.WriteRune(',')
	b.WriteString(strconv.Itoa(p.Y))
	b.WriteRune(')')

	return b.String()
}
