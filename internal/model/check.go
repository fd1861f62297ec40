package model

import "fmt"

// attacks reports whether the piece on from threatens to. Pawns threaten
// their forward diagonals whether or not anything stands there.
func attacks(p *Piece, from, to Location, b *Board) bool {
	m := Move{Start: from, End: to}
	if p.rank == Pawn {
		return m.rowDiff() == p.color.forward() && abs(m.colDiff()) == 1
	}
	return p.CanMove(m, b)
}

// isSquareAttacked reports whether any piece of attacker threatens loc.
func isSquareAttacked(b *Board, attacker Color, loc Location) bool {
	for _, from := range b.PieceLocations(attacker) {
		if attacks(b.pieceAt(from), from, loc, b) {
			return true
		}
	}
	return false
}

// inCheck reports whether color's king is attacked. A shielded king, or a
// side with no king, is never in check.
func inCheck(b *Board, color Color) bool {
	king, ok := b.KingLocation(color)
	if !ok || b.IsInvulnerable(king) {
		return false
	}
	return isSquareAttacked(b, color.Opposite(), king)
}

// movePlan is a fully validated move and what committing it implies.
type movePlan struct {
	move   Move
	piece  *Piece
	effect moveEffect
	castle *Move
}

// apply performs the plan on b and returns the piece it captured, if any,
// and whether the mover fell into a black hole.
func (pl movePlan) apply(b *Board) (*Piece, bool) {
	captured, _ := b.RelocatePiece(pl.move.Start, pl.move.End)
	if pl.effect.enPassant != nil {
		captured, _ = b.RemovePiece(*pl.effect.enPassant)
	}
	if pl.castle != nil {
		b.RelocatePiece(pl.castle.Start, pl.castle.End)
	}
	if b.HasBlackHole(pl.move.End) {
		b.RemovePiece(pl.move.End)
		return captured, true
	}
	return captured, false
}

// planMove decides whether color may make m on b. It never mutates b.
func planMove(b *Board, color Color, m Move) (movePlan, error) {
	if err := checkBounds(m.Start, m.End); err != nil {
		return movePlan{}, err
	}
	if m.Start == m.End {
		return movePlan{}, fmt.Errorf("%w: %s goes nowhere", ErrIllegalMove, m)
	}
	p := b.pieceAt(m.Start)
	if p == nil {
		return movePlan{}, fmt.Errorf("%w: no piece at %s", ErrIllegalMove, m.Start)
	}
	if p.color != color {
		return movePlan{}, fmt.Errorf("%w: %s belongs to %s", ErrIllegalMove, m.Start, p.color)
	}

	plan := movePlan{move: m, piece: p}
	if p.rank == King && m.rowDiff() == 0 && abs(m.colDiff()) == 2 {
		castle, err := planCastle(b, p, m)
		if err != nil {
			return movePlan{}, err
		}
		plan.castle = castle
	} else {
		effect, ok := p.validate(m, b)
		if !ok {
			return movePlan{}, fmt.Errorf("%w: %s cannot move %s", ErrIllegalMove, p, m)
		}
		plan.effect = effect
	}

	if target := b.pieceAt(m.End); target != nil && b.IsInvulnerable(m.End) {
		return movePlan{}, fmt.Errorf("%w: %s is invulnerable", ErrIllegalMove, m.End)
	}
	if victim := plan.effect.enPassant; victim != nil && b.IsInvulnerable(*victim) {
		return movePlan{}, fmt.Errorf("%w: %s is invulnerable", ErrIllegalMove, *victim)
	}
	if p.rank == King && b.HasBlackHole(m.End) {
		return movePlan{}, fmt.Errorf("%w: king cannot enter a black hole", ErrIllegalMove)
	}

	sim := b.Clone()
	plan.apply(sim)
	if inCheck(sim, color) {
		return movePlan{}, fmt.Errorf("%w: %s leaves the king in check", ErrIllegalMove, m)
	}
	return plan, nil
}

// planCastle checks a two-file king move and returns the matching rook move.
func planCastle(b *Board, king *Piece, m Move) (*Move, error) {
	illegal := func(reason string) (*Move, error) {
		return nil, fmt.Errorf("%w: cannot castle, %s", ErrIllegalMove, reason)
	}
	if king.hasMoved || m.Start.Row != king.color.HomeRow() {
		return illegal("king has moved")
	}
	dir := sign(m.colDiff())
	rookLoc := Location{Row: m.Start.Row, Col: 0}
	if dir > 0 {
		rookLoc.Col = BoardSize - 1
	}
	rook := b.pieceAt(rookLoc)
	if rook == nil || rook.rank != Rook || rook.color != king.color || rook.hasMoved {
		return illegal("rook has moved")
	}
	for loc := m.Start.Offset(0, dir); loc != rookLoc; loc = loc.Offset(0, dir) {
		if !b.IsEmpty(loc) || b.HasBlackHole(loc) {
			return illegal("path is blocked")
		}
	}
	if inCheck(b, king.color) {
		return illegal("king is in check")
	}
	crossed := m.Start.Offset(0, dir)
	if isSquareAttacked(b, king.color.Opposite(), crossed) {
		return illegal("king crosses an attacked square")
	}
	return &Move{Start: rookLoc, End: crossed}, nil
}

// hasLegalMove reports whether color has any move at all on b.
func hasLegalMove(b *Board, color Color) bool {
	for _, from := range b.PieceLocations(color) {
		for row := 0; row < BoardSize; row++ {
			for col := 0; col < BoardSize; col++ {
				m := Move{Start: from, End: Location{Row: row, Col: col}}
				if from == m.End {
					continue
				}
				if _, err := planMove(b, color, m); err == nil {
					return true
				}
			}
		}
	}
	return false
}

// LegalMoves lists every move color may make from loc on b.
func LegalMoves(b *Board, color Color, loc Location) []Move {
	var out []Move
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			m := Move{Start: loc, End: Location{Row: row, Col: col}}
			if loc == m.End {
				continue
			}
			if _, err := planMove(b, color, m); err == nil {
				out = append(out, m)
			}
		}
	}
	return out
}
