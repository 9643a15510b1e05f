package mino

import (
	"fmt"
)

// PieceBlocks is the number of blocks in every tetromino.
const PieceBlocks = 4

// PivotIndex is the block every piece rotates around.
const PivotIndex = 1

type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeJ
	ShapeL
	ShapeS
	ShapeZ

	ShapeCount
)

func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Shapes lists every shape in catalog order.
var Shapes = []Shape{ShapeI, ShapeO, ShapeT, ShapeJ, ShapeL, ShapeS, ShapeZ}

// The second offset of each shape is its pivot.
var (
	TetrominoI = Mino{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	TetrominoO = Mino{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	TetrominoT = Mino{{0, 0}, {1, 0}, {2, 0}, {1, 1}}
	TetrominoJ = Mino{{0, 0}, {1, 0}, {2, 0}, {2, 1}}
	TetrominoL = Mino{{0, 0}, {1, 0}, {2, 0}, {0, 1}}
	TetrominoS = Mino{{0, 1}, {1, 1}, {1, 0}, {2, 0}}
	TetrominoZ = Mino{{0, 0}, {1, 0}, {1, 1}, {2, 1}}
)

var shapeMinos = map[Shape]Mino{
	ShapeI: TetrominoI,
	ShapeO: TetrominoO,
	ShapeT: TetrominoT,
	ShapeJ: TetrominoJ,
	ShapeL: TetrominoL,
	ShapeS: TetrominoS,
	ShapeZ: TetrominoZ,
}

var shapeSolids = map[Shape]Block{
	ShapeI: BlockSolidCyan,
	ShapeO: BlockSolidYellow,
	ShapeT: BlockSolidMagenta,
	ShapeJ: BlockSolidBlue,
	ShapeL: BlockSolidOrange,
	ShapeS: BlockSolidGreen,
	ShapeZ: BlockSolidRed,
}

// ShapeMino returns the shape-local offsets of s.
func ShapeMino(s Shape) Mino {
	m := shapeMinos[s]

	newMino := make(Mino, len(m))
	copy(newMino, m)
	return newMino
}

// Piece is a tetromino. Blocks hold shape-local offsets until the piece is
// moved onto a board, absolute board coordinates afterwards.
type Piece struct {
	Shape  Shape
	Blocks [PieceBlocks]Point
	Pivot  int
	Solid  Block
}

func NewPiece(s Shape) *Piece {
	m, ok := shapeMinos[s]
	if !ok {
		return nil
	}

	p := &Piece{Shape: s, Pivot: PivotIndex, Solid: shapeSolids[s]}
	copy(p.Blocks[:], m)

	return p
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s%s", p.Shape, p.Mino())
}

// Mino returns the current block positions of p.
func (p *Piece) Mino() Mino {
	m := make(Mino, PieceBlocks)
	copy(m, p.Blocks[:])
	return m
}

func (p *Piece) PivotPoint() Point {
	return p.Blocks[p.Pivot]
}

// Width returns the number of columns spanned by p.
func (p *Piece) Width() int {
	return p.Mino().Origin().Width()
}

func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}

	np := *p
	return &np
}

// HasPoint reports whether any block of p sits at pt.
func (p *Piece) HasPoint(pt Point) bool {
	for _, b := range p.Blocks {
		if b == pt {
			return true
		}
	}

	return false
}
