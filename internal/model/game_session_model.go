package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GameSession struct {
	SessionId          string                      `gorm:"type:varchar(64);primaryKey"`
	UserId             *uuid.UUID                  `gorm:"type:uuid;index:idx_game_sessions_recent,priority:1"`
	Theme              string                      `gorm:"type:varchar(100);not null;index:idx_game_sessions_recent,priority:2"`
	RequestedLevel     string                      `gorm:"type:varchar(20);not null;index:idx_game_sessions_recent,priority:3"`
	Level              string                      `gorm:"type:varchar(20);not null"`
	CharacterName      string                      `gorm:"type:varchar(255)"`
	MaxAttempts        int                         `gorm:"not null;default:0"`
	AttemptsLeft       int                         `gorm:"not null;default:0"`
	IsCompleted        bool                        `gorm:"not null;default:false"`
	Score              int                         `gorm:"not null;default:0"`
	StartTime          time.Time                   `gorm:"not null"`
	EndTime            *time.Time                  `gorm:"index"`
	ExcludedCharacters datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	UpdatedAt          time.Time                   `gorm:"autoUpdateTime"`

	Messages []GameChatMessage `gorm:"foreignKey:GameSessionId;references:SessionId;constraint:OnDelete:CASCADE"`
}

func (GameSession) TableName() string {
	return "game_sessions"
}
