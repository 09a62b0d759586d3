package handler

import (
	"net/http/httptest"
	"testing"

	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/repository/memory"
	internalWS "guessing-game-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStreamApp() *fiber.App {
	log := logger.NewNopLogger()
	h := NewGameStreamHandler(memory.NewSessionStore(0), internalWS.NewHub(nil, log), "secret", log)
	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

func TestGameStream_RequiresUpgrade(t *testing.T) {
	resp, err := setupStreamApp().Test(httptest.NewRequest("GET", "/ws/game/s1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestGameStream_RejectsInvalidToken(t *testing.T) {
	resp, err := setupStreamApp().Test(httptest.NewRequest("GET", "/ws/game/s1?token=garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
