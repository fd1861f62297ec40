package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/powerchess-backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrPlayerNotInGame = errors.New("player not in game")
)

// session pairs a game with its observers. mu serializes compound
// operations such as move, promote and diff.
type session struct {
	game        *model.Game
	connections *GameConnections
	mu          sync.Mutex
}

// GameManager is the registry of running games.
type GameManager struct {
	games    map[string]*session
	settings model.Settings
	log      *zap.SugaredLogger
	mu       sync.RWMutex
}

func NewGameManager(settings model.Settings, log *zap.SugaredLogger) *GameManager {
	return &GameManager{
		games:    make(map[string]*session),
		settings: settings,
		log:      log,
	}
}

// CreateGame starts a new game with a fresh id.
func (gm *GameManager) CreateGame() string {
	gameID := uuid.New().String()
	log := gm.log.With("game", gameID)
	game := model.NewGame(
		model.WithID(gameID),
		model.WithSettings(gm.settings),
		model.WithLogger(log),
	)

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = &session{game: game, connections: NewGameConnections(log)}
	gm.log.Infow("game created", "game", gameID)
	return gameID
}

func (gm *GameManager) session(gameID string) (*session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return s, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return nil, err
	}
	return s.game, nil
}

// AddPlayerToGame seats playerID at the first open color. A player already
// seated gets their color back.
func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return model.White, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.game.PlayerByID(playerID); ok {
		return p.Color(), nil
	}
	color, ok := s.game.EmptyColor()
	if !ok {
		return model.White, model.ErrGameFull
	}
	if err := s.game.AddPlayer(model.NewPlayer(playerID, color)); err != nil {
		return model.White, err
	}
	gm.log.Infow("player joined", "game", gameID, "player", playerID, "color", color)
	return color, nil
}

// RemoveGame forgets a game and closes its connections.
func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	s, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()
	if !exists {
		return
	}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for playerID, conn := range s.connections.connections {
		conn.Close()
		delete(s.connections.connections, playerID)
	}
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
