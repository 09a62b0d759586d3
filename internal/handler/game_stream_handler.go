package handler

import (
	"context"
	"fmt"

	"guessing-game-be/internal/constant"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/pkg/serverutils"
	"guessing-game-be/internal/store"
	internalWS "guessing-game-be/internal/websocket"
	"guessing-game-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// GameStreamHandler attaches websocket viewers to a session's broadcast group.
// The stream is read-only; moves go through the HTTP API.
type GameStreamHandler struct {
	store     store.SessionStore
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewGameStreamHandler(sessionStore store.SessionStore, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *GameStreamHandler {
	return &GameStreamHandler{
		store:     sessionStore,
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (h *GameStreamHandler) RegisterRoutes(router fiber.Router) {
	ws := router.Group("/ws")
	ws.Use(serverutils.NewOptionalJwtMiddleware(h.jwtSecret))
	ws.Get("/game/:session_id", h.ServeWs)
}

func (h *GameStreamHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(h.serve)(c)
}

func (h *GameStreamHandler) serve(conn *websocket.Conn) {
	sessionId := conn.Params("session_id")
	viewer := "anonymous"
	if userId, ok := conn.Locals("user_id").(fmt.Stringer); ok {
		viewer = userId.String()
	}

	session, err := h.store.GetSession(context.Background(), sessionId)
	if err != nil {
		h.logger.Warn("GameStream", "Viewer asked for unknown session", map[string]interface{}{"session_id": sessionId, "viewer": viewer})
		if frame, encErr := events.Encode(game.SystemMessageEvent(constant.MsgSessionNotFound)); encErr == nil {
			conn.WriteMessage(websocket.TextMessage, frame)
		}
		conn.Close()
		return
	}

	client := internalWS.NewClient(h.hub, conn, sessionId, h.logger)
	for _, e := range []events.Event{
		game.SystemMessageEvent(fmt.Sprintf(constant.MsgConnected, sessionId)),
		game.UpdateAttemptsEvent(session.AttemptsLeft),
	} {
		frame, err := events.Encode(e)
		if err != nil {
			continue
		}
		client.Deliver(frame)
	}

	h.logger.Info("GameStream", "Viewer connected", map[string]interface{}{"session_id": sessionId, "viewer": viewer})
	client.Serve()
	h.logger.Info("GameStream", "Viewer disconnected", map[string]interface{}{"session_id": sessionId, "viewer": viewer})
}
