package model

func (p *Piece) canMoveBishop(m Move, b *Board) bool {
	if abs(m.rowDiff()) != abs(m.colDiff()) {
		return false
	}
	return clearPath(m, b) && p.validEnd(m.End, b)
}
