package model

// Player is one side of a game. The pending move or action is set by the
// caller and consumed by Game during a turn.
type Player struct {
	ID     string
	color  Color
	move   *Move
	action PowerAction
}

func NewPlayer(id string, color Color) *Player {
	return &Player{ID: id, color: color}
}

func (p *Player) Color() Color { return p.color }

func (p *Player) SetMove(m Move) {
	p.move = &m
}

// PendingMove returns the move waiting to be played, if any.
func (p *Player) PendingMove() (Move, bool) {
	if p.move == nil {
		return Move{}, false
	}
	return *p.move, true
}

func (p *Player) clearMove() {
	p.move = nil
}

func (p *Player) SetAction(a PowerAction) {
	p.action = a
}

func (p *Player) Action() PowerAction {
	return p.action
}

// ClientPlayer is the public view of a seated player.
type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
}
