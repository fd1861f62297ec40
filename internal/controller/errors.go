package controller

import (
	"errors"

	"github.com/benbeisheim/powerchess-backend/internal/model"
	"github.com/benbeisheim/powerchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrGameFull):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrPlayerNotInGame), errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidLocation):
		return fiber.StatusBadRequest
	case isRuleViolation(err):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// isRuleViolation reports errors caused by a request the rules do not allow
// right now, as opposed to a fault.
func isRuleViolation(err error) bool {
	for _, target := range []error{
		model.ErrIllegalMove,
		model.ErrIllegalAction,
		model.ErrWrongState,
		model.ErrGameOver,
		model.ErrInvalidLocation,
		model.ErrNotYourTurn,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
