package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFlattensPayload(t *testing.T) {
	data, err := Encode(New("update_attempts", map[string]interface{}{"attempts_left": 4}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"update_attempts","attempts_left":4}`, string(data))
}

func TestDecode(t *testing.T) {
	event, err := Decode([]byte(`{"type":"chat_message","sender":"ai","message":"Oi"}`))
	require.NoError(t, err)
	assert.Equal(t, "chat_message", event.EventType())
	assert.Equal(t, "ai", event.Payload()["sender"])
	assert.NotContains(t, event.Payload(), "type")
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}
