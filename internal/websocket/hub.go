package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "game_cluster_events"

// Listener receives encoded frames for the groups it subscribed to.
type Listener interface {
	// Deliver must not block. Returning false marks the listener as too slow.
	Deliver(frame []byte) bool
	Close()
}

// Hub fans events out to the listeners of a group. Delivery is best-effort
// and, per group, in publish order. Late subscribers get no replay.
type Hub struct {
	// groupId -> listeners
	groups map[string]map[Listener]struct{}
	mu     sync.RWMutex

	// Redis connection for cross-instance fan-out. Optional.
	rdb        *redis.Client
	instanceId string

	logger logger.ILogger
}

type clusterEnvelope struct {
	Origin  string          `json:"origin"`
	Group   string          `json:"group"`
	Message json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		groups:     make(map[string]map[Listener]struct{}),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

// Run relays events published by other instances until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		<-ctx.Done()
		return
	}

	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var envelope clusterEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				h.logger.Warn("Hub", "Cluster message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if envelope.Origin == h.instanceId {
				continue
			}
			h.deliverLocal(envelope.Group, envelope.Message)
		}
	}
}

func (h *Hub) Subscribe(groupId string, l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()

	listeners, ok := h.groups[groupId]
	if !ok {
		listeners = make(map[Listener]struct{})
		h.groups[groupId] = listeners
	}
	listeners[l] = struct{}{}
	h.logger.Info("Hub", "Listener subscribed", map[string]interface{}{"group": groupId, "listeners": len(listeners)})
}

func (h *Hub) Unsubscribe(groupId string, l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(groupId, l)
}

func (h *Hub) removeLocked(groupId string, l Listener) {
	listeners, ok := h.groups[groupId]
	if !ok {
		return
	}
	if _, found := listeners[l]; !found {
		return
	}
	delete(listeners, l)
	l.Close()
	if len(listeners) == 0 {
		delete(h.groups, groupId)
	}
}

// ListenerCount reports how many local listeners a group has.
func (h *Hub) ListenerCount(groupId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[groupId])
}

func (h *Hub) Publish(ctx context.Context, groupId string, event events.Event) {
	data, err := events.Encode(event)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode event", map[string]interface{}{"group": groupId, "error": err.Error()})
		return
	}

	h.deliverLocal(groupId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{Origin: h.instanceId, Group: groupId, Message: data})
		if err := h.rdb.Publish(ctx, clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Cluster publish failed", map[string]interface{}{"group": groupId, "error": err.Error()})
		}
	}
}

// deliverLocal holds the write lock so concurrent publishers to one group
// cannot interleave frames differently across listeners.
func (h *Hub) deliverLocal(groupId string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for l := range h.groups[groupId] {
		if !l.Deliver(data) {
			h.logger.Warn("Hub", "Listener buffer full, dropping listener", map[string]interface{}{"group": groupId})
			h.removeLocked(groupId, l)
		}
	}
}
