package controller

import (
	"strconv"

	"github.com/benbeisheim/powerchess-backend/internal/middleware"
	"github.com/benbeisheim/powerchess-backend/internal/model"
	"github.com/benbeisheim/powerchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	log         *zap.SugaredLogger
}

func NewGameController(gameService *service.GameService, log *zap.SugaredLogger) *GameController {
	return &GameController{gameService: gameService, log: log}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := middleware.PlayerID(c)

	gameID, color, err := gc.gameService.CreateGame(playerID)
	if err != nil {
		gc.log.Errorw("create game failed", "player", playerID, "error", err)
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		gc.log.Debugw("join refused", "game", gameID, "player", playerID, "error", err)
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(gameState)
}

// GetLegalMoves answers /api/game/:gameId/moves?row=1&col=4.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	row, rowErr := strconv.Atoi(c.Query("row"))
	col, colErr := strconv.Atoi(c.Query("col"))
	if rowErr != nil || colErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row and col are required",
		})
	}

	moves, err := gc.gameService.LegalMoves(gameID, model.Location{Row: row, Col: col})
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if moves == nil {
		moves = []model.Move{}
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}
