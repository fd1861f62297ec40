package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade admits only websocket handshakes for /ws/game/:gameId and
// copies the game and player ids into locals, which survive the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		playerID := PlayerID(c)
		if gameID == "" || playerID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game id and player id are required",
			})
		}

		c.Locals(WSGameIDKey, gameID)
		c.Locals(WSPlayerIDKey, playerID)
		return c.Next()
	}
}
