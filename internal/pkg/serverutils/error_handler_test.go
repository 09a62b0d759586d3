package serverutils

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"guessing-game-be/internal/game"
	"guessing-game-be/internal/queue"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddleware_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("load: %w", game.ErrSessionNotFound), fiber.StatusNotFound},
		{"forbidden", game.ErrForbidden, fiber.StatusForbidden},
		{"invalid level", game.ErrInvalidLevel, fiber.StatusBadRequest},
		{"completed", game.ErrSessionCompleted, fiber.StatusConflict},
		{"queue closed", queue.ErrQueueClosed, fiber.StatusServiceUnavailable},
		{"fiber error", fiber.ErrUnauthorized, fiber.StatusUnauthorized},
		{"unknown", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/", func(ctx *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestErrorHandlerMiddleware_HidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/", func(ctx *fiber.Ctx) error { return fmt.Errorf("dsn=secret") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "secret")
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Theme string `validate:"required"`
	}

	err := ValidateRequest(req{})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "required", validationErr.Fields["Theme"])

	assert.NoError(t, ValidateRequest(req{Theme: "Filmes"}))
}
