package model

func (p *Piece) canMoveQueen(m Move, b *Board) bool {
	return p.canMoveRook(m, b) || p.canMoveBishop(m, b)
}
