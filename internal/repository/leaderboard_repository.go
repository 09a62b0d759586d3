package repository

import (
	"context"

	"guessing-game-be/internal/entity"

	"github.com/google/uuid"
)

// LeaderboardRepository accumulates finished-game scores per player.
// An empty theme addresses the global board.
type LeaderboardRepository interface {
	AddScore(ctx context.Context, theme string, userId uuid.UUID, score int) error
	Top(ctx context.Context, theme string, limit int) ([]*entity.LeaderboardEntry, error)
}
