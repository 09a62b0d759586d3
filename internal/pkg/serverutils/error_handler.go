package serverutils

import (
	"errors"

	"guessing-game-be/internal/game"
	"guessing-game-be/internal/queue"

	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErr *ValidationError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErr), errors.Is(err, game.ErrInvalidLevel):
		return fiber.StatusBadRequest
	case errors.Is(err, game.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, game.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, game.ErrSessionCompleted), errors.Is(err, game.ErrGameAlreadyStarted):
		return fiber.StatusConflict
	case errors.Is(err, queue.ErrQueueClosed):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := statusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
