package queue

import (
	"time"

	"github.com/google/uuid"
)

type TaskKind string

const (
	TaskStartGame     TaskKind = "start_game"
	TaskPlayerMessage TaskKind = "player_message"
)

// Task is one trigger for the orchestrator. SessionId is the ordering key.
type Task struct {
	Id         string     `json:"id"`
	Kind       TaskKind   `json:"kind"`
	SessionId  string     `json:"session_id"`
	UserId     *uuid.UUID `json:"user_id,omitempty"`
	Theme      string     `json:"theme,omitempty"`
	Level      string     `json:"level,omitempty"`
	Text       string     `json:"text,omitempty"`
	EnqueuedAt time.Time  `json:"enqueued_at"`
}

func NewStartGameTask(sessionId string, userId *uuid.UUID, theme, level string) Task {
	return Task{
		Id:         uuid.NewString(),
		Kind:       TaskStartGame,
		SessionId:  sessionId,
		UserId:     userId,
		Theme:      theme,
		Level:      level,
		EnqueuedAt: time.Now(),
	}
}

func NewPlayerMessageTask(sessionId string, userId *uuid.UUID, text string) Task {
	return Task{
		Id:         uuid.NewString(),
		Kind:       TaskPlayerMessage,
		SessionId:  sessionId,
		UserId:     userId,
		Text:       text,
		EnqueuedAt: time.Now(),
	}
}
