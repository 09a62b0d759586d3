package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/repository/specification"
	"guessing-game-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGormStore(uowFactory unitofwork.RepositoryFactory) SessionStore {
	return &gormStore{uowFactory: uowFactory}
}

func (s *gormStore) CreateSession(ctx context.Context, session *entity.GameSession) error {
	if session.StartTime.IsZero() {
		session.StartTime = time.Now()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GameSessionRepository().Create(ctx, session); err != nil {
		return fmt.Errorf("create game session: %w", err)
	}
	return nil
}

func (s *gormStore) GetSession(ctx context.Context, sessionId string) (*entity.GameSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.GameSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, fmt.Errorf("load game session: %w", err)
	}
	if session == nil {
		return nil, game.ErrSessionNotFound
	}
	return session, nil
}

func (s *gormStore) UpdateSession(ctx context.Context, session *entity.GameSession) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GameSessionRepository().Update(ctx, session); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.ErrSessionNotFound
		}
		return fmt.Errorf("update game session: %w", err)
	}
	return nil
}

// AppendMessage allocates the next seq and inserts inside one transaction.
func (s *gormStore) AppendMessage(ctx context.Context, sessionId string, sender game.Sender, text string) (*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			uow.Rollback()
			panic(r)
		}
	}()

	seq, err := uow.GameMessageRepository().NextSeq(ctx, sessionId)
	if err != nil {
		uow.Rollback()
		return nil, fmt.Errorf("allocate message seq: %w", err)
	}

	message := &entity.ChatMessage{
		Id:            uuid.New(),
		GameSessionId: sessionId,
		Sender:        sender,
		Text:          text,
		Seq:           seq,
		CreatedAt:     time.Now(),
	}
	if err := uow.GameMessageRepository().Create(ctx, message); err != nil {
		uow.Rollback()
		return nil, fmt.Errorf("append chat message: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *gormStore) DeleteMessage(ctx context.Context, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GameMessageRepository().Delete(ctx, messageId)
}

func (s *gormStore) ListMessages(ctx context.Context, sessionId string) ([]*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GameMessageRepository().FindAll(ctx,
		specification.ByGameSessionID{GameSessionID: sessionId},
		specification.OrderBy{Field: "seq"},
	)
}

func (s *gormStore) CountUserMessages(ctx context.Context, sessionId string) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GameMessageRepository().Count(ctx,
		specification.ByGameSessionID{GameSessionID: sessionId},
		specification.BySender{Sender: string(game.SenderUser)},
	)
}

func (s *gormStore) RecentCharacterNames(ctx context.Context, userId uuid.UUID, theme, requestedLevel string, limit int) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GameSessionRepository().PluckCharacterNames(ctx,
		specification.ByUserID{UserID: &userId},
		specification.Filter("theme", theme),
		specification.Filter("requested_level", requestedLevel),
		specification.OrderBy{Field: "COALESCE(end_time, start_time)", Desc: true},
		specification.Pagination{Limit: limit},
	)
}
