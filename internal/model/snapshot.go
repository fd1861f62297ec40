package model

// PieceView is the client's picture of a piece.
type PieceView struct {
	Color Color `json:"color"`
	Rank  Rank  `json:"type"`
}

// PowerUpView is an active overlay as shown to clients.
type PowerUpView struct {
	Kind      PowerUpKind `json:"kind"`
	TurnsLeft int         `json:"turnsLeft"`
}

// CellView is everything visible on one cell.
type CellView struct {
	Location  Location      `json:"location"`
	Piece     *PieceView    `json:"piece,omitempty"`
	Power     *Rarity       `json:"power,omitempty"`
	EnPassant *Color        `json:"enPassant,omitempty"`
	PowerUps  []PowerUpView `json:"powerUps,omitempty"`
}

func (c CellView) Empty() bool {
	return c.Piece == nil && c.Power == nil && c.EnPassant == nil && len(c.PowerUps) == 0
}

// Equal compares two views of the same cell.
func (c CellView) Equal(o CellView) bool {
	if c.Location != o.Location || len(c.PowerUps) != len(o.PowerUps) {
		return false
	}
	if (c.Piece == nil) != (o.Piece == nil) || (c.Piece != nil && *c.Piece != *o.Piece) {
		return false
	}
	if (c.Power == nil) != (o.Power == nil) || (c.Power != nil && *c.Power != *o.Power) {
		return false
	}
	if (c.EnPassant == nil) != (o.EnPassant == nil) || (c.EnPassant != nil && *c.EnPassant != *o.EnPassant) {
		return false
	}
	for i := range c.PowerUps {
		if c.PowerUps[i] != o.PowerUps[i] {
			return false
		}
	}
	return true
}

func (b *Board) view(loc Location) CellView {
	c := b.cell(loc)
	v := CellView{Location: loc}
	if c.piece != nil {
		v.Piece = &PieceView{Color: c.piece.color, Rank: c.piece.rank}
	}
	if c.power != nil {
		r := c.power.rarity
		v.Power = &r
	}
	if c.marker != nil {
		color := c.marker.Color
		v.EnPassant = &color
	}
	for _, u := range c.powerUps {
		v.PowerUps = append(v.PowerUps, PowerUpView{Kind: u.kind, TurnsLeft: u.turnsLeft})
	}
	return v
}

// Cells returns a view of every cell, indexed [row][col].
func (g *Game) Cells() [BoardSize][BoardSize]CellView {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out [BoardSize][BoardSize]CellView
	g.board.each(func(loc Location, _ *cell) {
		out[loc.Row][loc.Col] = g.board.view(loc)
	})
	return out
}

// ActionView describes an offered power action.
type ActionView struct {
	Index         int          `json:"index"`
	ID            ActionID     `json:"id"`
	Rarity        Rarity       `json:"rarity"`
	FollowUp      FollowUpKind `json:"followUp"`
	WhereCaptured Location     `json:"whereCaptured"`
}

type CapturedPieces struct {
	White []Rank `json:"white"`
	Black []Rank `json:"black"`
}

// GameState is the snapshot sent to clients.
type GameState struct {
	ID              string         `json:"id"`
	State           State          `json:"state"`
	ToMove          Color          `json:"toMove"`
	IsCheck         bool           `json:"isCheck"`
	Outcome         *Outcome       `json:"outcome"`
	Board           []CellView     `json:"boardState"`
	MoveHistory     []Ply          `json:"moveHistory"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	PowerOptions    []ActionView   `json:"powerOptions"`
	PromotionSquare *Location      `json:"promotionSquare"`
	LastMove        *Move          `json:"lastMove"`
	Players         struct {
		White *ClientPlayer `json:"white"`
		Black *ClientPlayer `json:"black"`
	} `json:"players"`
}

// Snapshot captures the whole game for clients. Board lists non-empty
// cells only.
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := GameState{
		ID:          g.ID,
		State:       g.state,
		ToMove:      g.active,
		IsCheck:     g.check,
		Board:       make([]CellView, 0, 32),
		MoveHistory: make([]Ply, len(g.plies)),
		CapturedPieces: CapturedPieces{
			White: ranks(g.lost[White]),
			Black: ranks(g.lost[Black]),
		},
		PowerOptions: make([]ActionView, 0, len(g.options)),
	}
	copy(s.MoveHistory, g.plies)
	if g.state == GameOver {
		outcome := g.outcome
		s.Outcome = &outcome
	}
	g.board.each(func(loc Location, _ *cell) {
		if v := g.board.view(loc); !v.Empty() {
			s.Board = append(s.Board, v)
		}
	})
	for i, a := range g.options {
		s.PowerOptions = append(s.PowerOptions, ActionView{
			Index:         i,
			ID:            a.ID(),
			Rarity:        a.Rarity(),
			FollowUp:      a.FollowUp(),
			WhereCaptured: a.WhereCaptured(),
		})
	}
	if g.promoteAt != nil {
		loc := *g.promoteAt
		s.PromotionSquare = &loc
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		s.LastMove = &last
	}
	if p := g.players[White]; p != nil {
		s.Players.White = &ClientPlayer{ID: p.ID, Color: White}
	}
	if p := g.players[Black]; p != nil {
		s.Players.Black = &ClientPlayer{ID: p.ID, Color: Black}
	}
	return s
}
