package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbeisheim/powerchess-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		debug bool
	}{
		{"debug", true},
		{"info", false},
		{"bogus", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(tt.level)
			if got := logger.Desugar().Core().Enabled(zapcore.DebugLevel); got != tt.debug {
				t.Fatalf("debug enabled = %v, want %v", got, tt.debug)
			}
		})
	}
}

func TestNewAppRoutes(t *testing.T) {
	cfg, err := config.Setup("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app := NewApp(cfg, NewLogger("error"))

	req := httptest.NewRequest(http.MethodPost, "/api/game/create", nil)
	req.Header.Set("X-Player-ID", "alice")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	// A plain GET is not a websocket upgrade.
	req = httptest.NewRequest(http.MethodGet, "/ws/game/anything", nil)
	req.Header.Set("X-Player-ID", "alice")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("ws: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("expected %d, got %d", fiber.StatusUpgradeRequired, resp.StatusCode)
	}
}
