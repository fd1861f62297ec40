package model

import "fmt"

// Rank is the tagged discriminant of a piece. Every rank-specific behavior
// switches over it.
type Rank uint8

const (
	Pawn Rank = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

func (r Rank) String() string {
	switch r {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return fmt.Sprintf("rank(%d)", uint8(r))
}

func (r Rank) notation() string {
	switch r {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Piece is a single chess piece. Its rank and color are fixed for its lifetime.
type Piece struct {
	color             Color
	rank              Rank
	hasMoved          bool
	capturedEnPassant bool
}

func NewPiece(color Color, rank Rank) *Piece {
	return &Piece{color: color, rank: rank}
}

func (p *Piece) Color() Color { return p.color }
func (p *Piece) Rank() Rank { return p.rank }
func (p *Piece) HasMoved() bool { return p.hasMoved }
func (p *Piece) CapturedEnPassant() bool { return p.capturedEnPassant }

func (p *Piece) ObjectKind() ObjectKind { return KindPiece }

func (p *Piece) String() string {
	return p.color.String() + " " + p.rank.String()
}

// moveEffect holds the board changes a validated move implies beyond the
// relocation itself. They are applied only when the game commits the move.
type moveEffect struct {
	marker    *Location
	enPassant *Location
}

// CanMove reports whether the piece may make m on b according to its own
// geometry and occupancy rules. It never mutates the board; check safety and
// castling are decided by Game.
func (p *Piece) CanMove(m Move, b *Board) bool {
	_, ok := p.validate(m, b)
	return ok
}

func (p *Piece) validate(m Move, b *Board) (moveEffect, bool) {
	if !m.Start.InBounds() || !m.End.InBounds() || m.Start == m.End {
		return moveEffect{}, false
	}
	switch p.rank {
	case Pawn:
		return p.validatePawn(m, b)
	case Knight:
		return moveEffect{}, p.canMoveKnight(m, b)
	case Bishop:
		return moveEffect{}, p.canMoveBishop(m, b)
	case Rook:
		return moveEffect{}, p.canMoveRook(m, b)
	case Queen:
		return moveEffect{}, p.canMoveQueen(m, b)
	case King:
		return moveEffect{}, p.canMoveKing(m, b)
	}
	return moveEffect{}, false
}

// validEnd reports whether the destination is free of friendly pieces.
func (p *Piece) validEnd(end Location, b *Board) bool {
	other := b.pieceAt(end)
	return other == nil || other.color != p.color
}

// clearPath walks from start toward end along a straight or diagonal line
// and reports whether every intermediate cell is free of pieces.
func clearPath(m Move, b *Board) bool {
	rowDir, colDir := sign(m.rowDiff()), sign(m.colDiff())
	for loc := m.Start.Offset(rowDir, colDir); loc != m.End; loc = loc.Offset(rowDir, colDir) {
		if !b.IsEmpty(loc) {
			return false
		}
	}
	return true
}
