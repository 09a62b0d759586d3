package implementation

import (
	"context"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/mapper"
	"guessing-game-be/internal/model"
	"guessing-game-be/internal/repository/contract"
	"guessing-game-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GameMapper
}

func NewGameMessageRepository(db *gorm.DB) contract.GameMessageRepository {
	return &GameMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewGameMapper(),
	}
}

func (r *GameMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.ChatMessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ChatMessageToEntity(m)
	return nil
}

func (r *GameMessageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GameChatMessage{}, "id = ?", id).Error
}

func (r *GameMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.GameChatMessage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChatMessagesToEntities(models), nil
}

func (r *GameMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.GameChatMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GameMessageRepositoryImpl) NextSeq(ctx context.Context, sessionId string) (int64, error) {
	var maxSeq int64
	err := r.db.WithContext(ctx).
		Model(&model.GameChatMessage{}).
		Where("game_session_id = ?", sessionId).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, err
	}
	return maxSeq + 1, nil
}
