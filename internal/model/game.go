package model

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// State is where a game stands in its turn cycle.
type State uint8

const (
	WaitingForMove State = iota
	WaitingForPowerUpSelection
	WaitingForPowerUpExec
	WaitingForPromote
	GameOver
)

func (s State) String() string {
	switch s {
	case WaitingForMove:
		return "WAITING_FOR_MOVE"
	case WaitingForPowerUpSelection:
		return "WAITING_FOR_POWER_UP_SELECTION"
	case WaitingForPowerUpExec:
		return "WAITING_FOR_POWER_UP_EXEC"
	case WaitingForPromote:
		return "WAITING_FOR_PROMOTE"
	case GameOver:
		return "GAME_OVER"
	}
	return fmt.Sprintf("STATE_%d", uint8(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EndReason says how a finished game ended.
type EndReason uint8

const (
	ReasonNone EndReason = iota
	ReasonMate
	ReasonStalemate
	ReasonResignation
	ReasonDrawAgreed
)

func (r EndReason) String() string {
	switch r {
	case ReasonMate:
		return "checkmate"
	case ReasonStalemate:
		return "stalemate"
	case ReasonResignation:
		return "resignation"
	case ReasonDrawAgreed:
		return "draw"
	}
	return "none"
}

func (r EndReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Outcome is the result of a finished game. Winner is nil for draws.
type Outcome struct {
	Reason EndReason `json:"reason"`
	Winner *Color    `json:"winner"`
}

// The Game struct owns one board and serializes every operation on it.
type Game struct {
	ID       string
	mu       sync.Mutex
	log      *zap.SugaredLogger
	rng      randSource
	settings Settings

	board   *Board
	players [2]*Player
	active  Color
	state   State
	check   bool
	outcome Outcome

	history []Move
	plies   []Ply
	lost    [2][]*Piece

	options       []PowerAction
	whereCaptured Location
	promoteAt     *Location
	powerUps      []*PowerUp
	removed       map[*PowerUp]Location
	spawned       map[*PowerObject]Location
	drawOffers    [2]bool
}

// randSource is the slice of math/rand the game draws from.
type randSource interface {
	Float64() float64
	Intn(n int) int
	Perm(n int) []int
}

func NewGame(opts ...Option) *Game {
	g := &Game{
		settings: DefaultSettings(),
		removed:  make(map[*PowerUp]Location),
		spawned:  make(map[*PowerObject]Location),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.board == nil {
		g.board = NewStandardBoard()
	}
	if g.rng == nil {
		g.rng = newRand()
	}
	if g.log == nil {
		g.log = zap.NewNop().Sugar()
	}
	return g
}

// require checks the game is in want and not over.
func (g *Game) require(want State) error {
	if g.state == GameOver {
		return ErrGameOver
	}
	if g.state != want {
		return fmt.Errorf("%w: game is %s, want %s", ErrWrongState, g.state, want)
	}
	return nil
}

// AddPlayer seats p at its color. A game holds at most one player per color.
func (g *Game) AddPlayer(p *Player) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players[White] != nil && g.players[Black] != nil {
		return ErrGameFull
	}
	if g.players[p.color] != nil {
		return fmt.Errorf("%w: %s is taken", ErrGameFull, p.color)
	}
	g.players[p.color] = p
	g.log.Debugw("player seated", "game", g.ID, "player", p.ID, "color", p.color)
	return nil
}

// EmptyColor returns a color nobody sits at yet, white first.
func (g *Game) EmptyColor() (Color, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, c := range []Color{White, Black} {
		if g.players[c] == nil {
			return c, true
		}
	}
	return White, false
}

func (g *Game) Player(c Color) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[c]
}

// PlayerByID finds the seated player with id.
func (g *Game) PlayerByID(id string) (*Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerByID(id)
}

func (g *Game) playerByID(id string) (*Player, bool) {
	for _, p := range g.players {
		if p != nil && p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) IsPlayerInGame(id string) bool {
	_, ok := g.PlayerByID(id)
	return ok
}

// CanSpectate reports whether a seat is still open.
func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[White] == nil || g.players[Black] == nil
}

// SetPendingMove records m as the active player's next move.
func (g *Game) SetPendingMove(m Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.players[g.active]
	if p == nil {
		return fmt.Errorf("%w: no %s player", ErrWrongState, g.active)
	}
	p.SetMove(m)
	return nil
}

// Turn validates the active player's pending move and commits it. On error
// nothing changes.
func (g *Game) Turn() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.require(WaitingForMove); err != nil {
		return err
	}
	player := g.players[g.active]
	if player == nil {
		return fmt.Errorf("%w: no %s player", ErrWrongState, g.active)
	}
	m, ok := player.PendingMove()
	if !ok {
		return fmt.Errorf("%w: no pending move", ErrIllegalMove)
	}
	plan, err := planMove(g.board, g.active, m)
	if err != nil {
		g.log.Debugw("move rejected", "game", g.ID, "move", m.String(), "error", err)
		return err
	}
	player.clearMove()

	power := g.board.PowerObjectAt(m.End)
	consumed := g.commit(plan)
	if power != nil {
		g.board.removePowerObject(m.End)
	}
	g.retireDropped()

	var promote *Location
	if !consumed && plan.piece.rank == Pawn && m.End.Row == g.active.FarRow() {
		end := m.End
		promote = &end
	}

	if power != nil {
		g.whereCaptured = m.End
		if opts := g.candidates(power.rarity); len(opts) == 2 {
			g.options = opts
			g.promoteAt = promote
			g.state = WaitingForPowerUpSelection
			g.log.Infow("power object captured", "game", g.ID, "color", g.active, "rarity", power.rarity)
			return nil
		}
		g.log.Warnw("no power actions available", "game", g.ID, "rarity", power.rarity)
	}
	if promote != nil {
		g.promoteAt = promote
		g.state = WaitingForPromote
		return nil
	}
	g.endTurn()
	return nil
}

// commit applies a validated plan to the live board and records it. It
// reports whether the mover fell into a black hole.
func (g *Game) commit(plan movePlan) bool {
	color := g.active
	m := plan.move
	g.board.ClearEnPassantMarker(color)

	var rook *Piece
	if plan.castle != nil {
		rook = g.board.pieceAt(plan.castle.Start)
	}
	captured, consumed := plan.apply(g.board)
	g.board.pruneMarkers()

	ply := Ply{Color: color, Rank: plan.piece.rank, Move: m, Castle: plan.castle}
	if plan.effect.enPassant != nil {
		plan.piece.capturedEnPassant = true
		ply.EnPassant = true
	}
	if captured != nil {
		g.recordLoss(captured)
		r := captured.rank
		ply.Captured = &r
	}
	if rook != nil {
		rook.hasMoved = true
	}
	if plan.effect.marker != nil && !consumed {
		g.board.SetEnPassantMarker(*plan.effect.marker, color)
	}
	if consumed {
		g.recordLoss(plan.piece)
	}
	plan.piece.hasMoved = true
	ply.Notation = ply.notation()

	g.history = append(g.history, m)
	g.plies = append(g.plies, ply)
	g.drawOffers[color] = false
	g.log.Debugw("move committed", "game", g.ID, "ply", ply.Notation)
	return consumed
}

func (g *Game) recordLoss(p *Piece) {
	g.lost[p.color] = append(g.lost[p.color], p)
}

// endTurn closes the active player's turn and hands the move to the other
// side.
func (g *Game) endTurn() {
	mover := g.active
	for _, loc := range g.board.PieceLocations(mover) {
		g.board.pieceAt(loc).capturedEnPassant = false
	}
	g.tickPowerUps()
	g.options = nil
	g.promoteAt = nil
	g.active = mover.Opposite()
	g.spawnPowerObject()
	g.state = WaitingForMove
	g.evaluate()
}

// evaluate settles check, mate and stalemate for the side to move.
func (g *Game) evaluate() {
	color := g.active
	g.check = inCheck(g.board, color)
	if hasLegalMove(g.board, color) {
		return
	}
	g.state = GameOver
	if g.check {
		winner := color.Opposite()
		g.outcome = Outcome{Reason: ReasonMate, Winner: &winner}
	} else {
		g.outcome = Outcome{Reason: ReasonStalemate}
	}
	g.log.Infow("game over", "game", g.ID, "reason", g.outcome.Reason)
}

func (g *Game) addPowerUp(kind PowerUpKind, loc Location, turns int) {
	u := newPowerUp(kind, loc, turns)
	g.board.addPowerUp(u)
	g.powerUps = append(g.powerUps, u)
}

// retireDropped moves power-ups that left the board with their piece into
// the removed map.
func (g *Game) retireDropped() {
	kept := g.powerUps[:0]
	for _, u := range g.powerUps {
		if u.expired {
			g.removed[u] = u.at
			continue
		}
		kept = append(kept, u)
	}
	g.powerUps = kept
}

// tickPowerUps counts down every live power-up and retires the ones that ran
// out.
func (g *Game) tickPowerUps() {
	g.retireDropped()
	kept := g.powerUps[:0]
	for _, u := range g.powerUps {
		u.turnsLeft--
		if u.turnsLeft <= 0 {
			g.board.removePowerUp(u)
			u.expired = true
			g.removed[u] = u.at
			continue
		}
		kept = append(kept, u)
	}
	g.powerUps = kept
}

// ActionOptions returns the power actions on offer. It is nil outside
// WaitingForPowerUpSelection.
func (g *Game) ActionOptions() []PowerAction {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != WaitingForPowerUpSelection {
		return nil
	}
	out := make([]PowerAction, len(g.options))
	copy(out, g.options)
	return out
}

// SelectAction picks one of the offered power actions by index.
func (g *Game) SelectAction(i int) (PowerAction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.require(WaitingForPowerUpSelection); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(g.options) {
		return nil, fmt.Errorf("%w: no option %d", ErrIllegalAction, i)
	}
	a := g.options[i]
	g.players[g.active].SetAction(a)
	g.state = WaitingForPowerUpExec
	g.log.Debugw("power action selected", "game", g.ID, "action", a.ID())
	return a, nil
}

// ExecutePowerAction runs the selected action with in. Invalid input is
// rejected without touching anything.
func (g *Game) ExecutePowerAction(in FollowUp) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.require(WaitingForPowerUpExec); err != nil {
		return err
	}
	player := g.players[g.active]
	a := player.Action()
	if a == nil {
		return fmt.Errorf("%w: no action selected", ErrWrongState)
	}
	if !a.ValidInput(in) {
		return fmt.Errorf("%w: %s rejects %s", ErrIllegalAction, a.ID(), in)
	}
	a.Execute(in)
	g.board.pruneMarkers()
	g.retireDropped()
	player.SetAction(nil)
	g.options = nil
	g.log.Infow("power action executed", "game", g.ID, "action", a.ID(), "input", in.String())

	if loc, ok := g.farRowPawn(g.active); ok {
		g.promoteAt = &loc
		g.state = WaitingForPromote
		return nil
	}
	g.endTurn()
	return nil
}

// farRowPawn finds a pawn of color standing on its last row.
func (g *Game) farRowPawn(color Color) (Location, bool) {
	if g.promoteAt != nil {
		if p := g.board.pieceAt(*g.promoteAt); p != nil && p.rank == Pawn && p.color == color {
			return *g.promoteAt, true
		}
	}
	row := color.FarRow()
	for col := 0; col < BoardSize; col++ {
		loc := Location{Row: row, Col: col}
		if p := g.board.pieceAt(loc); p != nil && p.rank == Pawn && p.color == color {
			return loc, true
		}
	}
	return Location{}, false
}

// ExecutePromotionToQueen turns the waiting pawn into a queen and ends the
// turn. It returns the promotion square.
func (g *Game) ExecutePromotionToQueen() (Location, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.require(WaitingForPromote); err != nil {
		return Location{}, err
	}
	loc := *g.promoteAt
	q := NewPiece(g.active, Queen)
	q.hasMoved = true
	g.board.replacePiece(loc, q)
	if n := len(g.plies); n > 0 && g.plies[n-1].Move.End == loc {
		g.plies[n-1].Notation += "=Q"
	}
	g.log.Debugw("pawn promoted", "game", g.ID, "at", loc.String())
	g.endTurn()
	return loc, nil
}

// Resign ends the game in favor of color's opponent.
func (g *Game) Resign(color Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == GameOver {
		return ErrGameOver
	}
	winner := color.Opposite()
	g.state = GameOver
	g.outcome = Outcome{Reason: ReasonResignation, Winner: &winner}
	g.log.Infow("player resigned", "game", g.ID, "color", color)
	return nil
}

// OfferDraw records color's offer. The game ends drawn once both sides have
// an offer standing; an offer lapses when its side moves.
func (g *Game) OfferDraw(color Color) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == GameOver {
		return false, ErrGameOver
	}
	g.drawOffers[color] = true
	if !g.drawOffers[color.Opposite()] {
		return false, nil
	}
	g.state = GameOver
	g.outcome = Outcome{Reason: ReasonDrawAgreed}
	g.log.Infow("draw agreed", "game", g.ID)
	return true, nil
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) ActiveColor() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

func (g *Game) ActivePlayer() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[g.active]
}

func (g *Game) InCheck() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.check
}

func (g *Game) Outcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome
}

// History returns every committed move in order.
func (g *Game) History() []Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Game) Plies() []Ply {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Ply, len(g.plies))
	copy(out, g.plies)
	return out
}

// Lost lists the ranks color has lost, oldest first.
func (g *Game) Lost(color Color) []Rank {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ranks(g.lost[color])
}

func ranks(pieces []*Piece) []Rank {
	out := make([]Rank, len(pieces))
	for i, p := range pieces {
		out[i] = p.rank
	}
	return out
}

// RemovedPowerUps returns the power-ups that expired since the last call,
// keyed to where they were, and forgets them.
func (g *Game) RemovedPowerUps() map[*PowerUp]Location {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.removed
	g.removed = make(map[*PowerUp]Location)
	return out
}

// SpawnedPowerObjects returns the power objects spawned since the last call
// and forgets them.
func (g *Game) SpawnedPowerObjects() map[*PowerObject]Location {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.spawned
	g.spawned = make(map[*PowerObject]Location)
	return out
}

func (g *Game) PieceAt(loc Location) (*Piece, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.PieceAt(loc)
}

func (g *Game) IsEmpty(loc Location) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.IsEmpty(loc)
}

func (g *Game) ObjectsAt(loc Location) ([]BoardObject, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.ObjectsAt(loc)
}

func (g *Game) PowerObjectAt(loc Location) *PowerObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.PowerObjectAt(loc)
}

// LegalMovesFrom lists the active side's legal moves from loc.
func (g *Game) LegalMovesFrom(loc Location) []Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != WaitingForMove {
		return nil
	}
	return LegalMoves(g.board, g.active, loc)
}
