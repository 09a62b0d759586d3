package entity

import (
	"time"

	"guessing-game-be/internal/game"

	"github.com/google/uuid"
)

type GameSession struct {
	SessionId          string
	UserId             *uuid.UUID
	Theme              string
	RequestedLevel     string
	Level              game.Level
	CharacterName      string
	MaxAttempts        int
	AttemptsLeft       int
	IsCompleted        bool
	Score              int
	StartTime          time.Time
	EndTime            *time.Time
	ExcludedCharacters []string
}

// IsStarted reports whether a character has been committed.
func (s *GameSession) IsStarted() bool {
	return s.CharacterName != ""
}

// CanBeDrivenBy reports whether userId may act on the session.
// Unowned sessions accept anyone.
func (s *GameSession) CanBeDrivenBy(userId *uuid.UUID) bool {
	if s.UserId == nil {
		return true
	}
	return userId != nil && *s.UserId == *userId
}

func (s *GameSession) Clone() *GameSession {
	if s == nil {
		return nil
	}
	clone := *s
	if s.UserId != nil {
		id := *s.UserId
		clone.UserId = &id
	}
	if s.EndTime != nil {
		end := *s.EndTime
		clone.EndTime = &end
	}
	if s.ExcludedCharacters != nil {
		clone.ExcludedCharacters = append([]string(nil), s.ExcludedCharacters...)
	}
	return &clone
}
