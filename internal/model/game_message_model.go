package model

import (
	"time"

	"github.com/google/uuid"
)

type GameChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GameSessionId string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_game_chat_messages_seq,priority:1"`
	Sender        string    `gorm:"type:varchar(10);not null"`
	Text          string    `gorm:"type:text;not null"`
	Seq           int64     `gorm:"not null;uniqueIndex:idx_game_chat_messages_seq,priority:2"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (GameChatMessage) TableName() string {
	return "game_chat_messages"
}
