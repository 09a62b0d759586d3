package unitofwork

import (
	"context"

	"guessing-game-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GameSessionRepository() contract.GameSessionRepository
	GameMessageRepository() contract.GameMessageRepository
}
