package controller

import (
	"errors"

	"guessing-game-be/internal/dto"
	"guessing-game-be/internal/pkg/serverutils"
	"guessing-game-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGameController interface {
	RegisterRoutes(r fiber.Router)
	NewGame(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Leaderboard(ctx *fiber.Ctx) error
}

type gameController struct {
	service   service.IGameService
	jwtSecret string
}

func NewGameController(service service.IGameService, jwtSecret string) IGameController {
	return &gameController{service: service, jwtSecret: jwtSecret}
}

func (c *gameController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/game/v1")
	h.Use(serverutils.NewOptionalJwtMiddleware(c.jwtSecret))
	h.Post("/new", c.NewGame)
	h.Post("/message", c.SendMessage)
	h.Get("/leaderboard", c.Leaderboard)
	h.Get("/:id", c.Show)
	h.Get("/:id/messages", c.History)
}

func (c *gameController) NewGame(ctx *fiber.Ctx) error {
	var req dto.NewGameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.NewGame(ctx.UserContext(), serverutils.OptionalUserID(ctx), &req)
	if err != nil {
		return err
	}

	body := serverutils.SuccessResponse("Success create game", res)
	body.Code = fiber.StatusCreated
	return ctx.Status(fiber.StatusCreated).JSON(body)
}

func (c *gameController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), serverutils.OptionalUserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message queued", res))
}

func (c *gameController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show game", res))
}

func (c *gameController) History(ctx *fiber.Ctx) error {
	res, err := c.service.History(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get game messages", res))
}

func (c *gameController) Leaderboard(ctx *fiber.Ctx) error {
	res, err := c.service.Leaderboard(ctx.UserContext(), ctx.Query("theme"), ctx.QueryInt("limit", 10))
	if errors.Is(err, service.ErrLeaderboardUnavailable) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Leaderboard unavailable")
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get leaderboard", res))
}
