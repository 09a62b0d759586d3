package events

import (
	"encoding/json"
	"time"
)

// Event is anything the broadcast bus can deliver to a group.
type Event interface {
	// EventType returns the wire discriminator (e.g. "chat_message").
	EventType() string

	// Payload returns the fields sent alongside the type.
	Payload() map[string]interface{}

	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Encode renders the flat wire frame: {"type": ..., <payload fields>}.
func Encode(e Event) ([]byte, error) {
	frame := make(map[string]interface{}, len(e.Payload())+1)
	for k, v := range e.Payload() {
		frame[k] = v
	}
	frame["type"] = e.EventType()
	return json.Marshal(frame)
}

// Decode is the inverse of Encode.
func Decode(data []byte) (BaseEvent, error) {
	var frame map[string]interface{}
	if err := json.Unmarshal(data, &frame); err != nil {
		return BaseEvent{}, err
	}
	eventType, _ := frame["type"].(string)
	delete(frame, "type")
	return BaseEvent{Type: eventType, Data: frame, OccurredAt: time.Now()}, nil
}
