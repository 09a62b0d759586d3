package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParseUserID(t *testing.T) {
	userId := uuid.New()

	got, err := ParseUserID(signToken(t, "s3cret", jwt.MapClaims{"user_id": userId.String()}), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, userId, got)

	_, err = ParseUserID(signToken(t, "other", jwt.MapClaims{"user_id": userId.String()}), "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseUserID(signToken(t, "s3cret", jwt.MapClaims{"user_id": "not-a-uuid"}), "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJwtMiddleware(t *testing.T) {
	userId := uuid.New()
	app := fiber.New()
	app.Use(NewJwtMiddleware("s3cret"))
	app.Get("/", func(ctx *fiber.Ctx) error {
		got, ok := UserIDFromCtx(ctx)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return ctx.SendString(got.String())
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "s3cret", jwt.MapClaims{"user_id": userId.String()}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalJwtMiddleware(t *testing.T) {
	userId := uuid.New()
	app := fiber.New()
	app.Use(NewOptionalJwtMiddleware("s3cret"))
	app.Get("/", func(ctx *fiber.Ctx) error {
		if id := OptionalUserID(ctx); id != nil {
			return ctx.SendString(id.String())
		}
		return ctx.SendString("anonymous")
	})

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"anonymous", "/", fiber.StatusOK},
		{"query token", "/?token=" + signToken(t, "s3cret", jwt.MapClaims{"user_id": userId.String()}), fiber.StatusOK},
		{"bad token", "/?token=garbage", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
