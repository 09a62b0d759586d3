package queue

import (
	"context"
	"errors"
	"fmt"

	"guessing-game-be/internal/config"
	"guessing-game-be/internal/pkg/logger"

	"github.com/cespare/xxhash/v2"
)

var ErrQueueClosed = errors.New("task queue closed")

// Handler runs one task. Returning an error marks the task as failed by
// infrastructure; drivers that can redeliver will do so.
type Handler func(ctx context.Context, task Task) error

// Queue delivers tasks so that tasks sharing a SessionId run one at a time
// in enqueue order, while different sessions run concurrently.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	// Start launches the partition workers. It returns once they are running.
	Start(ctx context.Context, handler Handler) error
	Close() error
}

// PartitionFor maps a session onto one of n partitions.
func PartitionFor(sessionId string, n int) int {
	if n <= 1 {
		return 0
	}
	return int(xxhash.Sum64String(sessionId) % uint64(n))
}

func New(cfg config.Config, log logger.ILogger) (Queue, error) {
	switch cfg.Game.QueueDriver {
	case "", "memory":
		return NewMemoryQueue(cfg.Game.Partitions, cfg.Game.PartitionBuffer, log), nil
	case "nats":
		return NewNatsQueue(cfg.App.NatsURL, cfg.Game.Partitions, cfg.Game.GatewayTimeout, cfg.Game.ImageLookupTimeout, log)
	default:
		return nil, fmt.Errorf("unsupported queue driver: %s", cfg.Game.QueueDriver)
	}
}
