package game

import (
	"time"

	"github.com/google/uuid"
)

// Instruction carries everything the character persona needs for one reply.
type Instruction struct {
	Theme        string
	Level        Level
	Character    string
	AttemptsLeft int
}

// Turn is one entry of the chat history handed to the model.
type Turn struct {
	Sender Sender
	Text   string
}

// Result describes a finished game. Emitted once per session.
type Result struct {
	SessionId     string     `json:"session_id"`
	UserId        *uuid.UUID `json:"user_id,omitempty"`
	Theme         string     `json:"theme"`
	Level         Level      `json:"level"`
	CharacterName string     `json:"character_name"`
	Outcome       string     `json:"outcome"`
	Score         int        `json:"score"`
	EndTime       time.Time  `json:"end_time"`
}
