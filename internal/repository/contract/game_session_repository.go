package contract

import (
	"context"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/repository/specification"
)

type GameSessionRepository interface {
	Create(ctx context.Context, session *entity.GameSession) error
	Update(ctx context.Context, session *entity.GameSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GameSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GameSession, error)
	// PluckCharacterNames returns character_name of the matching sessions.
	PluckCharacterNames(ctx context.Context, specs ...specification.Specification) ([]string, error)
}
