package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION_GO", "1500ms")
	t.Setenv("TEST_DURATION_SECONDS", "12")
	t.Setenv("TEST_DURATION_BAD", "soon")

	assert.Equal(t, 1500*time.Millisecond, getEnvAsDuration("TEST_DURATION_GO", time.Second))
	assert.Equal(t, 12*time.Second, getEnvAsDuration("TEST_DURATION_SECONDS", time.Second))
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION_BAD", time.Second))
	assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION_UNSET", time.Minute))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL_TRUE", "TRUE")
	t.Setenv("TEST_BOOL_ZERO", "0")

	assert.True(t, getEnvAsBool("TEST_BOOL_TRUE", false))
	assert.False(t, getEnvAsBool("TEST_BOOL_ZERO", true))
	assert.True(t, getEnvAsBool("TEST_BOOL_UNSET", true))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUEUE_PARTITIONS", "4")
	t.Setenv("QUEUE_DRIVER", "nats")

	cfg := Load()

	assert.Equal(t, 4, cfg.Game.Partitions)
	assert.Equal(t, "nats", cfg.Game.QueueDriver)
	assert.Equal(t, 100, cfg.Game.RecentCharacterLimit)
}
