package entity

import (
	"time"

	"guessing-game-be/internal/game"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	GameSessionId string
	Sender        game.Sender
	Text          string
	Seq           int64
	CreatedAt     time.Time
}
