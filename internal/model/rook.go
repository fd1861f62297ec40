package model

func (p *Piece) canMoveRook(m Move, b *Board) bool {
	if m.Start.Row != m.End.Row && m.Start.Col != m.End.Col {
		return false
	}
	return clearPath(m, b) && p.validEnd(m.End, b)
}
