package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/powerchess-backend/internal/ws"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// lockedConn allows one writer at a time; the websocket layer panics on
// concurrent writes.
type lockedConn struct {
	Conn
	mu sync.Mutex
}

func (c *lockedConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

func (c *lockedConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.Close()
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*lockedConn // playerID -> connection
	mu          sync.RWMutex
	log         *zap.SugaredLogger
}

func NewGameConnections(log *zap.SugaredLogger) *GameConnections {
	return &GameConnections{
		connections: make(map[string]*lockedConn),
		log:         log,
	}
}

// Register adds conn for playerID. A player keeps their first healthy
// connection; a duplicate is refused.
func (gc *GameConnections) Register(playerID string, conn Conn) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if _, exists := gc.connections[playerID]; exists {
		return fmt.Errorf("connection already exists for player %s", playerID)
	}
	gc.connections[playerID] = &lockedConn{Conn: conn}
	gc.log.Debugw("connection registered", "player", playerID, "conn", fmt.Sprintf("%p", conn))
	return nil
}

// Unregister drops conn if it is still the one registered for playerID.
func (gc *GameConnections) Unregister(playerID string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if current, exists := gc.connections[playerID]; exists && current.Conn == conn {
		delete(gc.connections, playerID)
		gc.log.Debugw("connection unregistered", "player", playerID)
	}
}

func (gc *GameConnections) Count() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.connections)
}

// Send writes msg to one player, if connected.
func (gc *GameConnections) Send(playerID string, msg ws.Message) error {
	gc.mu.RLock()
	conn, ok := gc.connections[playerID]
	gc.mu.RUnlock()
	if !ok {
		return nil
	}
	return conn.WriteJSON(msg)
}

// Broadcast writes msg to every connection. Connections that fail are
// dropped.
func (gc *GameConnections) Broadcast(msg ws.Message) {
	gc.mu.RLock()
	active := make(map[string]*lockedConn, len(gc.connections))
	for playerID, conn := range gc.connections {
		active[playerID] = conn
	}
	gc.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			gc.log.Warnw("failed to send to player", "player", playerID, "error", err)
			gc.Unregister(playerID, conn.Conn)
			conn.Close()
		}
	}
}
