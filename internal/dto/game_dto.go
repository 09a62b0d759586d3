package dto

import (
	"time"

	"github.com/google/uuid"
)

type NewGameRequest struct {
	Theme string `json:"theme" validate:"required,max=100"`
	Level string `json:"level" validate:"required,max=50"`
}

type NewGameResponse struct {
	SessionId string `json:"session_id"`
}

type SendMessageRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required,max=1000"`
}

type SendMessageResponse struct {
	SessionId string `json:"session_id"`
	Queued    bool   `json:"queued"`
}

// GameSessionResponse hides the character until the game is over.
type GameSessionResponse struct {
	SessionId     string     `json:"session_id"`
	Theme         string     `json:"theme"`
	Level         string     `json:"level"`
	MaxAttempts   int        `json:"max_attempts"`
	AttemptsLeft  int        `json:"attempts_left"`
	IsStarted     bool       `json:"is_started"`
	IsCompleted   bool       `json:"is_completed"`
	Score         int        `json:"score"`
	CharacterName *string    `json:"character_name,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
}

type GameMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardEntryResponse struct {
	Rank   int       `json:"rank"`
	UserId uuid.UUID `json:"user_id"`
	Score  int       `json:"score"`
}

// PublishGameCompletedMessage is the payload of the game.completed topic.
type PublishGameCompletedMessage struct {
	SessionId     string     `json:"session_id"`
	UserId        *uuid.UUID `json:"user_id,omitempty"`
	Theme         string     `json:"theme"`
	Level         string     `json:"level"`
	CharacterName string     `json:"character_name"`
	Outcome       string     `json:"outcome"`
	Score         int        `json:"score"`
	EndTime       time.Time  `json:"end_time"`
}
