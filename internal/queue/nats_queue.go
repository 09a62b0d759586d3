package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"guessing-game-be/internal/pkg/logger"
	natsbus "guessing-game-be/pkg/nats"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	taskStream       = "GAME_TASKS"
	taskSubjectRoot  = "game.tasks"
	taskDurableRoot  = "game-tasks"
	taskMaxDeliver   = 3
	taskDedupeWindow = 2 * time.Minute
	ackWaitMargin    = 15 * time.Second
	minAckWait       = 30 * time.Second
)

// NatsQueue persists tasks in a JetStream work-queue stream. Every partition
// has its own subject and durable consumer with one message in flight, so
// ordering holds across processes.
type NatsQueue struct {
	publisher  *natsbus.Publisher
	subscriber *natsbus.Subscriber
	partitions int
	ackWait    time.Duration
	logger     logger.ILogger

	mu     sync.RWMutex
	closed bool
}

func NewNatsQueue(url string, partitions int, gatewayTimeout, imageTimeout time.Duration, log logger.ILogger) (*NatsQueue, error) {
	if partitions < 1 {
		partitions = 1
	}

	publisher, err := natsbus.NewPublisher(url)
	if err != nil {
		return nil, err
	}
	subscriber, err := natsbus.NewSubscriber(url)
	if err != nil {
		publisher.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = publisher.EnsureStream(ctx, jetstream.StreamConfig{
		Name:       taskStream,
		Subjects:   []string{taskSubjectRoot + ".>"},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.WorkQueuePolicy,
		Duplicates: taskDedupeWindow,
	})
	if err != nil {
		publisher.Close()
		subscriber.Close()
		return nil, err
	}

	return &NatsQueue{
		publisher:  publisher,
		subscriber: subscriber,
		partitions: partitions,
		ackWait:    ackWaitFor(gatewayTimeout, imageTimeout),
		logger:     log,
	}, nil
}

var _ Queue = (*NatsQueue)(nil)

// ackWaitFor bounds the slowest turn: classify and reply against the model,
// then the image lookup on completion, plus store round trips. Redelivery
// before that would replay the turn.
func ackWaitFor(gatewayTimeout, imageTimeout time.Duration) time.Duration {
	wait := 2*gatewayTimeout + imageTimeout + ackWaitMargin
	if wait < minAckWait {
		wait = minAckWait
	}
	return wait
}

func subjectFor(partition int) string {
	return fmt.Sprintf("%s.%d", taskSubjectRoot, partition)
}

func (q *NatsQueue) Enqueue(ctx context.Context, task Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	return q.publisher.Publish(ctx, subjectFor(PartitionFor(task.SessionId, q.partitions)), data, task.Id)
}

func (q *NatsQueue) Start(ctx context.Context, handler Handler) error {
	for p := 0; p < q.partitions; p++ {
		partition := p
		err := q.subscriber.Subscribe(ctx, natsbus.SubscribeConfig{
			Stream:        taskStream,
			Subject:       subjectFor(partition),
			Durable:       fmt.Sprintf("%s-%d", taskDurableRoot, partition),
			MaxAckPending: 1,
			MaxDeliver:    taskMaxDeliver,
			AckWait:       q.ackWait,
		}, func(ctx context.Context, data []byte) error {
			var task Task
			if err := json.Unmarshal(data, &task); err != nil {
				// Redelivering a malformed task cannot help.
				q.logger.Error("QUEUE", "Dropping malformed task", map[string]interface{}{"partition": partition, "error": err.Error()})
				return nil
			}
			if err := handler(ctx, task); err != nil {
				q.logger.Error("QUEUE", "Task failed", map[string]interface{}{
					"partition":  partition,
					"task_id":    task.Id,
					"session_id": task.SessionId,
					"error":      err.Error(),
				})
				return err
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	q.logger.Info("QUEUE", "NATS task queue started", map[string]interface{}{"partitions": q.partitions})
	return nil
}

func (q *NatsQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	q.subscriber.Close()
	q.publisher.Close()
	return nil
}
