package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Create skips zero values, so the column default is what an unstarted
// session reads back. It has to match the in-memory store.
func TestGameSession_AttemptColumnsDefaultToZero(t *testing.T) {
	s, err := schema.Parse(&GameSession{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	for _, name := range []string{"MaxAttempts", "AttemptsLeft"} {
		field := s.LookUpField(name)
		require.NotNil(t, field, name)
		assert.Equal(t, "0", field.DefaultValue, name)
	}
}
