package service

import (
	"context"
	"encoding/json"

	"guessing-game-be/internal/dto"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/repository"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService feeds finished games into the leaderboard.
type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	leaderboard repository.LeaderboardRepository
	logger      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	leaderboard repository.LeaderboardRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		leaderboard: leaderboard,
		logger:      log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishGameCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed, retrying will not help
		return
	}

	// Anonymous games have nobody to credit.
	if payload.UserId == nil {
		msg.Ack()
		return
	}

	if err := cs.leaderboard.AddScore(ctx, payload.Theme, *payload.UserId, payload.Score); err != nil {
		cs.logger.Error("CONSUMER", "Failed to record score", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		// The board is best effort; a Nack would spin on gochannel while
		// Redis is down.
		msg.Ack()
		return
	}

	cs.logger.Info("CONSUMER", "Score recorded", map[string]interface{}{
		"session_id": payload.SessionId,
		"user_id":    payload.UserId.String(),
		"score":      payload.Score,
	})
	msg.Ack()
}
