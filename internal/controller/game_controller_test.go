package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbeisheim/powerchess-backend/internal/middleware"
	"github.com/benbeisheim/powerchess-backend/internal/model"
	"github.com/benbeisheim/powerchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := zap.NewNop().Sugar()
	settings := model.DefaultSettings()
	settings.SpawnChance = 0
	gc := NewGameController(service.NewGameService(service.NewGameManager(settings, log), log), log)

	app := fiber.New()
	api := app.Group("/api", middleware.EnsurePlayerID())
	api.Post("/game/create", gc.CreateGame)
	api.Post("/game/join/:gameId", gc.JoinGame)
	api.Get("/game/:gameId", gc.GetGameState)
	api.Get("/game/:gameId/moves", gc.GetLegalMoves)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, playerID string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	body := map[string]json.RawMessage{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, body
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/game/create", "alice")
	if status != fiber.StatusOK {
		t.Fatalf("create: status %d", status)
	}
	var gameID string
	if err := json.Unmarshal(body["game_id"], &gameID); err != nil || gameID == "" {
		t.Fatalf("create: no game id in %s", body["game_id"])
	}
	if string(body["color"]) != `"white"` {
		t.Fatalf("creator should play white, got %s", body["color"])
	}
	return gameID
}

func TestCreateAndJoin(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app)

	tests := []struct {
		name     string
		playerID string
		path     string
		status   int
		color    string
	}{
		{"second player", "bob", "/api/game/join/" + gameID, fiber.StatusOK, `"black"`},
		{"rejoin", "alice", "/api/game/join/" + gameID, fiber.StatusOK, `"white"`},
		{"full", "carol", "/api/game/join/" + gameID, fiber.StatusConflict, ""},
		{"unknown game", "carol", "/api/game/join/missing", fiber.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, tt.path, tt.playerID)
			if status != tt.status {
				t.Fatalf("expected %d, got %d (%v)", tt.status, status, body)
			}
			if tt.color != "" && string(body["color"]) != tt.color {
				t.Fatalf("expected color %s, got %s", tt.color, body["color"])
			}
		})
	}
}

func TestMissingPlayerID(t *testing.T) {
	app := newTestApp(t)
	status, body := do(t, app, http.MethodPost, "/api/game/create", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("expected an error message")
	}
}

func TestGetGameState(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app)

	status, body := do(t, app, http.MethodGet, "/api/game/"+gameID, "alice")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if string(body["state"]) != `"WAITING_FOR_MOVE"` {
		t.Fatalf("unexpected state %s", body["state"])
	}
	if string(body["toMove"]) != `"white"` {
		t.Fatalf("unexpected side to move %s", body["toMove"])
	}

	if status, _ := do(t, app, http.MethodGet, "/api/game/missing", "alice"); status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestGetLegalMoves(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app)

	tests := []struct {
		name   string
		query  string
		status int
		moves  int
	}{
		{"pawn", "?row=1&col=4", fiber.StatusOK, 2},
		{"knight", "?row=0&col=6", fiber.StatusOK, 2},
		{"blocked bishop", "?row=0&col=5", fiber.StatusOK, 0},
		{"enemy piece", "?row=6&col=4", fiber.StatusOK, 0},
		{"out of bounds", "?row=8&col=0", fiber.StatusBadRequest, 0},
		{"missing query", "", fiber.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodGet, "/api/game/"+gameID+"/moves"+tt.query, "alice")
			if status != tt.status {
				t.Fatalf("expected %d, got %d (%v)", tt.status, status, body)
			}
			if status != fiber.StatusOK {
				return
			}
			var moves []model.Move
			if err := json.Unmarshal(body["moves"], &moves); err != nil {
				t.Fatalf("decode moves: %v", err)
			}
			if len(moves) != tt.moves {
				t.Fatalf("expected %d moves, got %v", tt.moves, moves)
			}
		})
	}
}
