package contract

import (
	"context"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GameMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// NextSeq returns one past the highest seq stored for the session.
	NextSeq(ctx context.Context, sessionId string) (int64, error)
}
