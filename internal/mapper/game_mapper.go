package mapper

import (
	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/model"

	"gorm.io/datatypes"
)

type GameMapper struct{}

func NewGameMapper() *GameMapper {
	return &GameMapper{}
}

func (m *GameMapper) GameSessionToEntity(s *model.GameSession) *entity.GameSession {
	if s == nil {
		return nil
	}

	var excluded []string
	if len(s.ExcludedCharacters) > 0 {
		excluded = append(excluded, s.ExcludedCharacters...)
	}

	return &entity.GameSession{
		SessionId:          s.SessionId,
		UserId:             s.UserId,
		Theme:              s.Theme,
		RequestedLevel:     s.RequestedLevel,
		Level:              game.Level(s.Level),
		CharacterName:      s.CharacterName,
		MaxAttempts:        s.MaxAttempts,
		AttemptsLeft:       s.AttemptsLeft,
		IsCompleted:        s.IsCompleted,
		Score:              s.Score,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		ExcludedCharacters: excluded,
	}
}

func (m *GameMapper) GameSessionToModel(s *entity.GameSession) *model.GameSession {
	if s == nil {
		return nil
	}

	return &model.GameSession{
		SessionId:          s.SessionId,
		UserId:             s.UserId,
		Theme:              s.Theme,
		RequestedLevel:     s.RequestedLevel,
		Level:              string(s.Level),
		CharacterName:      s.CharacterName,
		MaxAttempts:        s.MaxAttempts,
		AttemptsLeft:       s.AttemptsLeft,
		IsCompleted:        s.IsCompleted,
		Score:              s.Score,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		ExcludedCharacters: datatypes.JSONSlice[string](s.ExcludedCharacters),
	}
}

func (m *GameMapper) ChatMessageToEntity(msg *model.GameChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		GameSessionId: msg.GameSessionId,
		Sender:        game.Sender(msg.Sender),
		Text:          msg.Text,
		Seq:           msg.Seq,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *GameMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.GameChatMessage {
	if msg == nil {
		return nil
	}

	return &model.GameChatMessage{
		Id:            msg.Id,
		GameSessionId: msg.GameSessionId,
		Sender:        string(msg.Sender),
		Text:          msg.Text,
		Seq:           msg.Seq,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *GameMapper) ChatMessagesToEntities(msgs []*model.GameChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}
