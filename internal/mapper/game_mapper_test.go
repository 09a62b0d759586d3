package mapper

import (
	"testing"
	"time"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGameSessionRoundTripKeepsNullableFields(t *testing.T) {
	m := NewGameMapper()
	userId := uuid.New()
	end := time.Now()

	original := &entity.GameSession{
		SessionId:          uuid.NewString(),
		UserId:             &userId,
		Theme:              "Cientistas",
		RequestedLevel:     "Aleatório",
		Level:              game.LevelHard,
		CharacterName:      "Marie Curie",
		MaxAttempts:        5,
		AttemptsLeft:       2,
		IsCompleted:        true,
		Score:              70,
		EndTime:            &end,
		ExcludedCharacters: []string{"Einstein"},
	}

	got := m.GameSessionToEntity(m.GameSessionToModel(original))
	assert.Equal(t, original, got)

	unowned := m.GameSessionToEntity(m.GameSessionToModel(&entity.GameSession{SessionId: "s"}))
	assert.Nil(t, unowned.UserId)
	assert.Nil(t, unowned.EndTime)
	assert.Nil(t, unowned.ExcludedCharacters)
}

func TestNilInputs(t *testing.T) {
	m := NewGameMapper()
	assert.Nil(t, m.GameSessionToEntity(nil))
	assert.Nil(t, m.GameSessionToModel(nil))
	assert.Nil(t, m.ChatMessageToEntity(nil))
	assert.Nil(t, m.ChatMessageToModel(nil))
}
