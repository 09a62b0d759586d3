package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"guessing-game-be/internal/dto"
	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/pkg/serverutils"
	"guessing-game-be/internal/queue"
	"guessing-game-be/internal/repository/memory"
	"guessing-game-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubQueue struct {
	tasks []queue.Task
}

func (q *stubQueue) Enqueue(ctx context.Context, task queue.Task) error {
	q.tasks = append(q.tasks, task)
	return nil
}
func (q *stubQueue) Start(ctx context.Context, handler queue.Handler) error { return nil }
func (q *stubQueue) Close() error                                           { return nil }

func setupGameApp(t *testing.T) (*fiber.App, *memory.SessionStore, *stubQueue) {
	t.Helper()
	sessionStore := memory.NewSessionStore(0)
	q := &stubQueue{}
	svc := service.NewGameService(sessionStore, q, nil, logger.NewNopLogger())

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewGameController(svc, testSecret).RegisterRoutes(app.Group("/api"))
	return app, sessionStore, q
}

func bearer(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId.String()}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func decode[T any](t *testing.T, body io.Reader) serverutils.BaseResponse[T] {
	t.Helper()
	var res serverutils.BaseResponse[T]
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestGameController_NewGame(t *testing.T) {
	app, sessionStore, q := setupGameApp(t)
	userId := uuid.New()

	req := httptest.NewRequest("POST", "/api/game/v1/new", strings.NewReader(`{"theme":"Filmes","level":"Difícil"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, userId))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decode[dto.NewGameResponse](t, resp.Body)
	require.NotEmpty(t, body.Data.SessionId)

	session, err := sessionStore.GetSession(context.Background(), body.Data.SessionId)
	require.NoError(t, err)
	require.NotNil(t, session.UserId)
	assert.Equal(t, userId, *session.UserId)
	require.Len(t, q.tasks, 1)
}

func TestGameController_NewGameValidation(t *testing.T) {
	app, _, q := setupGameApp(t)

	req := httptest.NewRequest("POST", "/api/game/v1/new", strings.NewReader(`{"level":"Fácil"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, q.tasks)
}

func TestGameController_SendMessageStatuses(t *testing.T) {
	app, sessionStore, _ := setupGameApp(t)
	owner := uuid.New()
	require.NoError(t, sessionStore.CreateSession(context.Background(), &entity.GameSession{SessionId: "s1", UserId: &owner}))

	tests := []struct {
		name   string
		body   string
		user   uuid.UUID
		status int
	}{
		{"owner", `{"session_id":"s1","message":"É o Mario?"}`, owner, fiber.StatusOK},
		{"stranger", `{"session_id":"s1","message":"É o Mario?"}`, uuid.New(), fiber.StatusForbidden},
		{"unknown session", `{"session_id":"nope","message":"oi"}`, owner, fiber.StatusNotFound},
		{"empty message", `{"session_id":"s1","message":""}`, owner, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/game/v1/message", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", bearer(t, tt.user))
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGameController_ShowAndHistory(t *testing.T) {
	app, sessionStore, _ := setupGameApp(t)
	ctx := context.Background()
	require.NoError(t, sessionStore.CreateSession(ctx, &entity.GameSession{SessionId: "s1", Theme: "Filmes", CharacterName: "Shrek", AttemptsLeft: 7}))
	_, err := sessionStore.AppendMessage(ctx, "s1", "ai", "Sou verde.")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/game/v1/s1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	show := decode[dto.GameSessionResponse](t, resp.Body)
	assert.Nil(t, show.Data.CharacterName)
	assert.Equal(t, 7, show.Data.AttemptsLeft)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/game/v1/s1/messages", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	history := decode[[]dto.GameMessageResponse](t, resp.Body)
	require.Len(t, history.Data, 1)
	assert.Equal(t, "Sou verde.", history.Data[0].Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/game/v1/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGameController_LeaderboardUnavailable(t *testing.T) {
	app, _, _ := setupGameApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/game/v1/leaderboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
