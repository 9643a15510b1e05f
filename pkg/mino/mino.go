package mino

import (
	"sort"
	"strconv"
	"strings"
)

// Mino is a list of block offsets relative to a shape-local origin.
type Mino []Point

func (m Mino) Equal(other Mino) bool {
	if len(m) != len(other) {
		return false
	}

	return m.String() == other.String()
}

func (m Mino) String() string {
	newMino := make(Mino, len(m))
	copy(newMino, m)

	sort.Sort(newMino)

	var b strings.Builder
	for i := range newMino {
		if i > 0 {
			b.WriteRune(',')
		}

		b.WriteRune('(')
		b.WriteString(strconv.Itoa(newMino[i].X))
		b.WriteRune(',')
		b.WriteString(strconv.Itoa(newMino[i].Y))
		b.WriteRune(')')
	}

	return b.String()
}

func (m Mino) Len() int      { return len(m) }
func (m Mino) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m Mino) Less(i, j int) bool {
	return m[i].Y < m[j].Y || (m[i].Y == m[j].Y && m[i].X < m[j].X)
}

func (m Mino) Width() int {
	w, _ := m.Size()
	return w
}

// Size returns the extent of the bounding box of m. Offsets are expected to
// start at zero.
func (m Mino) Size() (int, int) {
	var x, y int
	for _, p := range m {
		if p.X > x {
			x = p.X
		}
		if p.Y > y {
			y = p.Y
		}
	}

	return x + 1, y + 1
}

func (m Mino) HasPoint(p Point) bool {
	for _, mp := range m {
		if mp == p {
			return true
		}
	}

	return false
}

// Origin returns a copy of m translated so its smallest coordinates are zero.
func (m Mino) Origin() Mino {
	if len(m) == 0 {
		return Mino{}
	}

	minx, miny := m[0].X, m[0].Y
	for i := 1; i < len(m); i++ {
		if m[i].X < minx {
			minx = m[i].X
		}
		if m[i].Y < miny {
			miny = m[i].Y
		}
	}

	newMino := make(Mino, len(m))
	for i := range m {
		newMino[i] = Point{m[i].X - minx, m[i].Y - miny}
	}

	return newMino
}
