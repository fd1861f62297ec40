package model

// armageddonAction clears every pawn from the board and shields both kings.
type armageddonAction struct{ actionBase }

func (a *armageddonAction) ValidInput(in FollowUp) bool {
	return in.Kind == FollowUpNone
}

func (a *armageddonAction) Execute(FollowUp) {
	b := a.board()
	for _, color := range []Color{White, Black} {
		for _, loc := range b.PieceLocations(color) {
			if b.pieceAt(loc).rank != Pawn {
				continue
			}
			p, _ := b.RemovePiece(loc)
			a.game.recordLoss(p)
			a.touch(loc)
		}
	}
	for _, color := range []Color{White, Black} {
		if king, ok := b.KingLocation(color); ok {
			a.game.addPowerUp(PowerUpInvulnerability, king, a.game.settings.ArmageddonTurns)
			a.touch(king)
		}
	}
}

// awakenAction promotes one of the player's minor pieces, rooks or pawns to a
// queen on the spot.
type awakenAction struct{ actionBase }

func (a *awakenAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpLocation {
		return false
	}
	p := a.ownPiece(in.Location)
	return p != nil && p.rank != Queen && p.rank != King
}

func (a *awakenAction) Execute(in FollowUp) {
	q := NewPiece(a.color, Queen)
	q.hasMoved = true
	a.board().replacePiece(in.Location, q)
	a.touch(in.Location)
}

// cloneAction duplicates one of the player's pieces onto an adjacent cell.
type cloneAction struct{ actionBase }

func (a *cloneAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpMove || checkBounds(in.Move.Start, in.Move.End) != nil {
		return false
	}
	m := in.Move
	p := a.ownPiece(m.Start)
	if p == nil || p.rank == King || m.Start == m.End {
		return false
	}
	if abs(m.rowDiff()) > 1 || abs(m.colDiff()) > 1 || !placeable(a.board(), m.End) {
		return false
	}
	return p.rank != Pawn || !backRow(m.End)
}

func (a *cloneAction) Execute(in FollowUp) {
	src := a.board().pieceAt(in.Move.Start)
	dup := NewPiece(a.color, src.rank)
	dup.hasMoved = true
	a.board().PlacePiece(in.Move.End, dup)
	a.touch(in.Move.End)
}

// reanimateAction brings back the player's most recently lost officer onto a
// free cell of the home row.
type reanimateAction struct{ actionBase }

func (a *reanimateAction) revivable() (int, bool) {
	lost := a.game.lost[a.color]
	for i := len(lost) - 1; i >= 0; i-- {
		if r := lost[i].rank; r != Pawn && r != King {
			return i, true
		}
	}
	return 0, false
}

func (a *reanimateAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpLocation || !in.Location.InBounds() {
		return false
	}
	if _, ok := a.revivable(); !ok {
		return false
	}
	return in.Location.Row == a.color.HomeRow() && placeable(a.board(), in.Location)
}

func (a *reanimateAction) Execute(in FollowUp) {
	i, _ := a.revivable()
	lost := a.game.lost[a.color]
	p := lost[i]
	a.game.lost[a.color] = append(lost[:i:i], lost[i+1:]...)
	revived := NewPiece(a.color, p.rank)
	revived.hasMoved = true
	a.board().PlacePiece(in.Location, revived)
	a.touch(in.Location)
}
