package service

import (
	"fmt"

	"github.com/benbeisheim/powerchess-backend/internal/model"
	"github.com/benbeisheim/powerchess-backend/internal/ws"
	"go.uber.org/zap"
)

type GameService struct {
	gameManager *GameManager
	log         *zap.SugaredLogger
}

func NewGameService(gameManager *GameManager, log *zap.SugaredLogger) *GameService {
	return &GameService{
		gameManager: gameManager,
		log:         log,
	}
}

// CreateGame starts a game and seats its creator.
func (gs *GameService) CreateGame(playerID string) (string, model.Color, error) {
	gameID := gs.gameManager.CreateGame()
	color, err := gs.gameManager.AddPlayerToGame(gameID, playerID)
	if err != nil {
		return "", color, fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, color, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Snapshot(), nil
}

// LegalMoves lists the moves available from loc to the side to move.
func (gs *GameService) LegalMoves(gameID string, loc model.Location) ([]model.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !loc.InBounds() {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidLocation, loc)
	}
	return game.LegalMovesFrom(loc), nil
}

// play runs op for playerID under the session lock and reports which cells
// changed. Only the player to move may act. A pawn left waiting on the last
// row is promoted to a queen before the diff is taken.
func (gs *GameService) play(gameID, playerID string, anyTurn bool, op func(g *model.Game, color model.Color) error) (*ws.GameUpdate, error) {
	s, err := gs.gameManager.session(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.game
	player, ok := game.PlayerByID(playerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotInGame, playerID)
	}
	if !anyTurn && player.Color() != game.ActiveColor() {
		return nil, model.ErrNotYourTurn
	}

	before := game.Cells()
	if err := op(game, player.Color()); err != nil {
		gs.log.Debugw("operation rejected", "game", gameID, "player", playerID, "error", err)
		return nil, err
	}

	update := &ws.GameUpdate{}
	if game.State() == model.WaitingForPromote {
		loc, err := game.ExecutePromotionToQueen()
		if err != nil {
			return nil, err
		}
		update.Promoted = &loc
	}

	after := game.Cells()
	for row := range after {
		for col := range after[row] {
			if !before[row][col].Equal(after[row][col]) {
				update.Changed = append(update.Changed, after[row][col])
			}
		}
	}
	for u, loc := range game.RemovedPowerUps() {
		gs.log.Debugw("power-up expired", "game", gameID, "kind", u.Kind(), "at", loc.String())
	}
	for o, loc := range game.SpawnedPowerObjects() {
		gs.log.Debugw("power object spawned", "game", gameID, "rarity", o.Rarity(), "at", loc.String())
	}

	snap := game.Snapshot()
	update.State = snap.State
	update.ToMove = snap.ToMove
	update.IsCheck = snap.IsCheck
	update.PowerOptions = snap.PowerOptions
	update.LastMove = snap.LastMove
	update.Outcome = snap.Outcome
	return update, nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) (*ws.GameUpdate, error) {
	return gs.play(gameID, playerID, false, func(g *model.Game, _ model.Color) error {
		if err := g.SetPendingMove(move); err != nil {
			return err
		}
		return g.Turn()
	})
}

func (gs *GameService) HandlePowerSelect(gameID string, playerID string, index int) (*ws.GameUpdate, error) {
	return gs.play(gameID, playerID, false, func(g *model.Game, _ model.Color) error {
		_, err := g.SelectAction(index)
		return err
	})
}

func (gs *GameService) HandlePowerExecute(gameID string, playerID string, in model.FollowUp) (*ws.GameUpdate, error) {
	return gs.play(gameID, playerID, false, func(g *model.Game, _ model.Color) error {
		return g.ExecutePowerAction(in)
	})
}

func (gs *GameService) HandleResign(gameID string, playerID string) (*ws.GameUpdate, error) {
	return gs.play(gameID, playerID, true, func(g *model.Game, color model.Color) error {
		return g.Resign(color)
	})
}

func (gs *GameService) HandleDrawOffer(gameID string, playerID string) (*ws.GameUpdate, error) {
	return gs.play(gameID, playerID, true, func(g *model.Game, color model.Color) error {
		_, err := g.OfferDraw(color)
		return err
	})
}

// RegisterConnection attaches conn to a game the player sits in, or to an
// open game as a spectator.
func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	s, err := gs.gameManager.session(gameID)
	if err != nil {
		return err
	}
	if !s.game.IsPlayerInGame(playerID) && !s.game.CanSpectate() {
		return fmt.Errorf("%w: %s", ErrPlayerNotInGame, playerID)
	}
	return s.connections.Register(playerID, conn)
}

// UnregisterConnection detaches conn. A finished game with nobody watching
// is dropped from the registry.
func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	s, err := gs.gameManager.session(gameID)
	if err != nil {
		return
	}
	s.connections.Unregister(playerID, conn)
	if s.connections.Count() == 0 && s.game.State() == model.GameOver {
		gs.gameManager.RemoveGame(gameID)
		gs.log.Infow("finished game removed", "game", gameID)
	}
}

// SendState writes the full snapshot to one player.
func (gs *GameService) SendState(gameID string, playerID string) error {
	s, err := gs.gameManager.session(gameID)
	if err != nil {
		return err
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.game.Snapshot())
	if err != nil {
		return err
	}
	return s.connections.Send(playerID, msg)
}

// Send writes msg to one player of a game.
func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	s, err := gs.gameManager.session(gameID)
	if err != nil {
		return err
	}
	return s.connections.Send(playerID, msg)
}

// Broadcast sends update to everyone watching the game, followed by a
// gameOver message once the game has ended.
func (gs *GameService) Broadcast(gameID string, update *ws.GameUpdate) error {
	s, err := gs.gameManager.session(gameID)
	if err != nil {
		return err
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameUpdate, update)
	if err != nil {
		return err
	}
	s.connections.Broadcast(msg)
	if update.Outcome != nil {
		over, err := ws.NewMessage(ws.MessageTypeGameOver, update.Outcome)
		if err != nil {
			return err
		}
		s.connections.Broadcast(over)
	}
	return nil
}
