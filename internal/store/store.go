package store

import (
	"context"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"

	"github.com/google/uuid"
)

// SessionStore persists game sessions and their chat log. Get returns
// game.ErrSessionNotFound for unknown ids. Updates are last-writer-wins.
type SessionStore interface {
	CreateSession(ctx context.Context, session *entity.GameSession) error
	GetSession(ctx context.Context, sessionId string) (*entity.GameSession, error)
	UpdateSession(ctx context.Context, session *entity.GameSession) error

	AppendMessage(ctx context.Context, sessionId string, sender game.Sender, text string) (*entity.ChatMessage, error)
	DeleteMessage(ctx context.Context, messageId uuid.UUID) error
	// ListMessages returns the log in append order.
	ListMessages(ctx context.Context, sessionId string) ([]*entity.ChatMessage, error)
	CountUserMessages(ctx context.Context, sessionId string) (int64, error)

	// RecentCharacterNames returns characters of the user's latest sessions
	// for the same theme and requested level, newest first. Abandoned
	// sessions count too.
	RecentCharacterNames(ctx context.Context, userId uuid.UUID, theme, requestedLevel string, limit int) ([]string, error)
}
