package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by this package.
const (
	PlayerIDKey   = "playerID"
	WSGameIDKey   = "wsGameID"
	WSPlayerIDKey = "wsPlayerID"
)

const maxPlayerIDLen = 64

// EnsurePlayerID takes the caller's id from the X-Player-ID header, falling
// back to the playerId query parameter (browsers cannot set headers on a
// websocket handshake).
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(PlayerIDKey).(string); ok {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get("X-Player-ID"))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query("playerId"))
		}
		switch {
		case playerID == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player id is required",
			})
		case len(playerID) > maxPlayerIDLen:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player id is too long",
			})
		}

		c.Locals(PlayerIDKey, playerID)
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(PlayerIDKey).(string)
	return id
}
