package service

import (
	"context"
	"encoding/json"

	"guessing-game-be/internal/dto"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const GameCompletedTopic = "game.completed"

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	// OnGameCompleted publishes the result on the topic. Failures are logged;
	// the game is already over by the time this runs.
	OnGameCompleted(ctx context.Context, result game.Result)
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, publisher message.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

func (ps *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, msg)
}

func (ps *publisherService) OnGameCompleted(ctx context.Context, result game.Result) {
	payload, err := json.Marshal(dto.PublishGameCompletedMessage{
		SessionId:     result.SessionId,
		UserId:        result.UserId,
		Theme:         result.Theme,
		Level:         string(result.Level),
		CharacterName: result.CharacterName,
		Outcome:       result.Outcome,
		Score:         result.Score,
		EndTime:       result.EndTime,
	})
	if err != nil {
		ps.logger.Error("PUBLISHER", "Failed to encode game result", map[string]interface{}{"session_id": result.SessionId, "error": err.Error()})
		return
	}
	if err := ps.Publish(ctx, payload); err != nil {
		ps.logger.Error("PUBLISHER", "Failed to publish game result", map[string]interface{}{"session_id": result.SessionId, "error": err.Error()})
	}
}
