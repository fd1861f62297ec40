package main

import (
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/powerchess-backend/internal/config"
	"github.com/benbeisheim/powerchess-backend/internal/controller"
	"github.com/benbeisheim/powerchess-backend/internal/middleware"
	"github.com/benbeisheim/powerchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("POWERCHESS_CONFIG"), "path to a config file")
	flag.Parse()

	cfg, err := config.Setup(*cfgPath)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}
	logger := NewLogger(cfg.LogLevel)
	defer logger.Sync()

	app := NewApp(cfg, logger)
	go handleShutdown(app, logger)

	logger.Infof("Server is running on %s", cfg.ServerAddr)
	if err := app.Listen(cfg.ServerAddr); err != nil {
		logger.Fatalw("Failed to start server", "error", err)
	}
}

func NewLogger(level string) *zap.SugaredLogger {
	zcfg := zap.NewProductionConfig()
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zcfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// NewApp wires services, controllers and routes.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		logger.Debugw("incoming request", "method", c.Method(), "path", c.Path())
		return c.Next()
	})

	gameManager := service.NewGameManager(cfg.GameSettings(), logger)
	gameService := service.NewGameService(gameManager, logger)

	gameController := controller.NewGameController(gameService, logger)
	wsController := controller.NewWebSocketController(gameService, logger)

	// WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.Origins(),
	}))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)

	return app
}

func handleShutdown(app *fiber.App, logger *zap.SugaredLogger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("Shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Errorw("Shutdown failed", "error", err)
	}
}
