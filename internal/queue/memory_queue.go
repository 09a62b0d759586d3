package queue

import (
	"context"
	"sync"

	"guessing-game-be/internal/pkg/logger"
)

// MemoryQueue keeps one buffered channel per partition, each drained by a
// single worker goroutine.
type MemoryQueue struct {
	partitions []chan Task
	logger     logger.ILogger

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewMemoryQueue(partitions, buffer int, log logger.ILogger) *MemoryQueue {
	if partitions < 1 {
		partitions = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	chans := make([]chan Task, partitions)
	for i := range chans {
		chans[i] = make(chan Task, buffer)
	}
	return &MemoryQueue{partitions: chans, logger: log}
}

var _ Queue = (*MemoryQueue)(nil)

// Enqueue blocks while the partition buffer is full.
func (q *MemoryQueue) Enqueue(ctx context.Context, task Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	ch := q.partitions[PartitionFor(task.SessionId, len(q.partitions))]
	select {
	case ch <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Start(ctx context.Context, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	if q.started {
		return nil
	}
	q.started = true

	for i, ch := range q.partitions {
		q.wg.Add(1)
		go q.work(ctx, i, ch, handler)
	}
	q.logger.Info("QUEUE", "Memory task queue started", map[string]interface{}{"partitions": len(q.partitions)})
	return nil
}

// Tasks run detached from ctx cancellation: Close drains buffered turns after
// shutdown has cancelled the root context, and each model call carries its
// own timeout.
func (q *MemoryQueue) work(ctx context.Context, partition int, ch <-chan Task, handler Handler) {
	defer q.wg.Done()
	taskCtx := context.WithoutCancel(ctx)
	for task := range ch {
		if err := handler(taskCtx, task); err != nil {
			q.logger.Error("QUEUE", "Task failed", map[string]interface{}{
				"partition":  partition,
				"task_id":    task.Id,
				"kind":       task.Kind,
				"session_id": task.SessionId,
				"error":      err.Error(),
			})
		}
	}
}

// Close stops accepting tasks and waits for the queued ones to drain.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	for _, ch := range q.partitions {
		close(ch)
	}
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}
