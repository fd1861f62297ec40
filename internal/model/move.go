package model

import "fmt"

// BoardSize is the number of rows and columns of the board.
const BoardSize = 8

// Location is a (row, column) coordinate. Row 0 is white's home row.
type Location struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewLocation returns the location or ErrInvalidLocation when it falls off the board.
func NewLocation(row, col int) (Location, error) {
	loc := Location{Row: row, Col: col}
	if !loc.InBounds() {
		return Location{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidLocation, row, col)
	}
	return loc, nil
}

func (l Location) InBounds() bool {
	return l.Row >= 0 && l.Row < BoardSize && l.Col >= 0 && l.Col < BoardSize
}

func (l Location) Offset(dRow, dCol int) Location {
	return Location{Row: l.Row + dRow, Col: l.Col + dCol}
}

// String renders the location in algebraic notation, e.g. "e2".
func (l Location) String() string {
	if !l.InBounds() {
		return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+l.Col, l.Row+1)
}

func (l Location) file() string {
	return fmt.Sprintf("%c", 'a'+l.Col)
}

// Move is an ordered pair of locations. It is a value type and never changes
// after construction.
type Move struct {
	Start Location `json:"from"`
	End   Location `json:"to"`
}

func NewMove(start, end Location) Move {
	return Move{Start: start, End: end}
}

func (m Move) String() string {
	return m.Start.String() + "-" + m.End.String()
}

func (m Move) rowDiff() int { return m.End.Row - m.Start.Row }
func (m Move) colDiff() int { return m.End.Col - m.Start.Col }

// Ply is a committed move together with what it did, kept for display.
type Ply struct {
	Color     Color  `json:"color"`
	Rank      Rank   `json:"piece"`
	Move      Move   `json:"move"`
	Captured  *Rank  `json:"captured,omitempty"`
	Castle    *Move  `json:"castleRookMove,omitempty"`
	EnPassant bool   `json:"enPassant"`
	Notation  string `json:"notation"`
}

func (p Ply) notation() string {
	capture := ""
	if p.Captured != nil {
		capture = "x"
	}
	if p.Castle != nil {
		if p.Move.End.Col == 2 {
			return "O-O-O"
		}
		return "O-O"
	}
	fileSpecifier := ""
	if p.Rank == Pawn && p.Move.Start.Col != p.Move.End.Col {
		fileSpecifier = p.Move.Start.file()
	}
	return fmt.Sprintf("%s%s%s%s", p.Rank.notation(), fileSpecifier, capture, p.Move.End.String())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
