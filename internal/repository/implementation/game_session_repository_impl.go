package implementation

import (
	"context"
	"errors"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/mapper"
	"guessing-game-be/internal/model"
	"guessing-game-be/internal/repository/contract"
	"guessing-game-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GameSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GameMapper
}

func NewGameSessionRepository(db *gorm.DB) contract.GameSessionRepository {
	return &GameSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewGameMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GameSessionRepositoryImpl) Create(ctx context.Context, session *entity.GameSession) error {
	m := r.mapper.GameSessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.GameSessionToEntity(m)
	return nil
}

func (r *GameSessionRepositoryImpl) Update(ctx context.Context, session *entity.GameSession) error {
	m := r.mapper.GameSessionToModel(session)
	// Select("*") so zero values (attempts_left=0, is_completed=false) are written.
	result := r.db.WithContext(ctx).Model(m).Select("*").Omit("Messages").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GameSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GameSession, error) {
	var m model.GameSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.GameSessionToEntity(&m), nil
}

func (r *GameSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GameSession, error) {
	var models []*model.GameSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.GameSession, len(models))
	for i, m := range models {
		entities[i] = r.mapper.GameSessionToEntity(m)
	}
	return entities, nil
}

func (r *GameSessionRepositoryImpl) PluckCharacterNames(ctx context.Context, specs ...specification.Specification) ([]string, error) {
	var names []string
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.GameSession{}), specs...)
	if err := query.Where("character_name <> ''").Pluck("character_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
