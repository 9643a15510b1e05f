package mino

// CanPlace reports whether every point is on the board and empty.
func (b *Board) CanPlace(points []Point) bool {
	for _, pt := range points {
		if !b.Empty(pt.X, pt.Y) {
			return false
		}
	}

	return true
}

// MovePiece translates p by (dx, dy). Either every block moves or, when any
// destination is out of bounds or occupied, the piece is left untouched.
func (b *Board) MovePiece(p *Piece, dx int, dy int) bool {
	var moved [PieceBlocks]Point
	for i, pt := range p.Blocks {
		moved[i] = pt.Add(Point{dx, dy})
	}

	if !b.CanPlace(moved[:]) {
		return false
	}

	p.Blocks = moved
	return true
}

func (b *Board) MoveLeft(p *Piece) bool  { return b.MovePiece(p, -1, 0) }
func (b *Board) MoveRight(p *Piece) bool { return b.MovePiece(p, 1, 0) }
func (b *Board) MoveDown(p *Piece) bool  { return b.MovePiece(p, 0, 1) }

// RotatePiece turns p a quarter turn counter-clockwise around its pivot
// block. There are no wall kicks: a blocked rotation leaves p untouched.
func (b *Board) RotatePiece(p *Piece) bool {
	c := p.PivotPoint()

	var rotated [PieceBlocks]Point
	for i, pt := range p.Blocks {
		rotated[i] = pt.RotateCCW(c)
	}

	if !b.CanPlace(rotated[:]) {
		return false
	}

	p.Blocks = rotated
	return true
}
