package mino

import (
	"fmt"
	"strings"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Board is the playing field. Row 0 is the top row and row H-1 the floor.
type Board struct {
	W int // Width
	H int // Height

	M []Block // Cells, row-major
}

func I(x int, y int, w int) int {
	return (y * w) + x
}

func NewBoard(w int, h int) (*Board, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("failed to create board: invalid size %dx%d", w, h)
	}

	return &Board{W: w, H: h, M: make([]Block, w*h)}, nil
}

func (b *Board) InBounds(x int, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Block returns the content of a cell, BlockNone when out of bounds.
func (b *Board) Block(x int, y int) Block {
	if !b.InBounds(x, y) {
		return BlockNone
	}

	return b.M[I(x, y, b.W)]
}

// Empty reports whether (x, y) is on the board and holds no block. Any
// out-of-bounds coordinate is reported as not empty.
func (b *Board) Empty(x int, y int) bool {
	return b.InBounds(x, y) && b.M[I(x, y, b.W)] == BlockNone
}

// Occupied reports whether (x, y) is on the board and holds a block.
func (b *Board) Occupied(x int, y int) bool {
	return b.InBounds(x, y) && b.M[I(x, y, b.W)].Occupied()
}

func (b *Board) SetBlock(x int, y int, block Block) bool {
	if !b.InBounds(x, y) {
		return false
	}

	b.M[I(x, y, b.W)] = block
	return true
}

func (b *Board) ClearBlock(x int, y int) bool {
	return b.SetBlock(x, y, BlockNone)
}

func (b *Board) LineFilled(y int) bool {
	if y < 0 || y >= b.H {
		return false
	}

	for x := 0; x < b.W; x++ {
		if b.M[I(x, y, b.W)] == BlockNone {
			return false
		}
	}

	return true
}

func (b *Board) LineEmpty(y int) bool {
	if y < 0 || y >= b.H {
		return false
	}

	for x := 0; x < b.W; x++ {
		if b.M[I(x, y, b.W)] != BlockNone {
			return false
		}
	}

	return true
}

func (b *Board) clearLine(y int) {
	for x := 0; x < b.W; x++ {
		b.M[I(x, y, b.W)] = BlockNone
	}
}

// ShiftLineDown copies row y-1 into row y and empties row y-1. Row 0 has
// nothing above it and is emptied instead.
func (b *Board) ShiftLineDown(y int) {
	if y < 0 || y >= b.H {
		return
	}

	if y == 0 {
		b.clearLine(0)
		return
	}

	copy(b.M[I(0, y, b.W):I(0, y+1, b.W)], b.M[I(0, y-1, b.W):I(0, y, b.W)])
	b.clearLine(y - 1)
}

// ClearFilled makes a single pass from the floor to the top. Every row that
// is either filled or empty is collapsed by shifting the row above it down,
// so one filled row is removed per pass and the rows above fall into the
// gap. It returns the number of filled rows found.
func (b *Board) ClearFilled() int {
	cleared := 0

	for y := b.H - 1; y >= 0; y-- {
		filled := b.LineFilled(y)
		if filled {
			cleared++
		}

		if filled || b.LineEmpty(y) {
			b.ShiftLineDown(y)
		}
	}

	return cleared
}

// Landed reports whether p can fall no further: a block rests on the floor
// or on an occupied cell.
func (b *Board) Landed(p *Piece) bool {
	for _, pt := range p.Blocks {
		below := pt.Below()
		if below.Y == b.H || b.Occupied(below.X, below.Y) {
			return true
		}
	}

	return false
}

// Lock writes p into the board with its colour.
func (b *Board) Lock(p *Piece) error {
	for _, pt := range p.Blocks {
		if !b.InBounds(pt.X, pt.Y) {
			return fmt.Errorf("failed to lock piece %s: point %s out of bounds", p, pt)
		}
	}

	for _, pt := range p.Blocks {
		b.M[I(pt.X, pt.Y, b.W)] = p.Solid
	}

	return nil
}

func (b *Board) Clone() *Board {
	nb := &Board{W: b.W, H: b.H, M: make([]Block, len(b.M))}
	copy(nb.M, b.M)

	return nb
}

// Render draws the board as text, top row first, with occupied cells as #
// and empty cells as dots.
func (b *Board) Render() string {
	var sb strings.Builder

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.M[I(x, y, b.W)] == BlockNone {
				sb.WriteRune('.')
			} else {
				sb.WriteRune('#')
			}
		}

		if y < b.H-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}
