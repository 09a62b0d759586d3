package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"guessing-game-be/internal/game"
	"guessing-game-be/internal/gateway"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a local Ollama: OLLAMA_BASE_URL=http://localhost:11434 OLLAMA_MODEL=gemma:2b
func TestOllamaGateway(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	model := os.Getenv("OLLAMA_MODEL")
	if baseURL == "" || model == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL / OLLAMA_MODEL not set")
	}

	gw := gateway.NewLLMGateway(ollama.NewOllamaProvider(baseURL, model), 2*time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	character, err := gw.SelectCharacter(ctx, "Desenhos animados", game.LevelEasy, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, character)
	t.Logf("Selected: %s", character)

	hint, err := gw.GenerateReply(ctx, game.Instruction{
		Theme:        "Desenhos animados",
		Level:        game.LevelEasy,
		Character:    character,
		AttemptsLeft: 10,
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, hint)
	t.Logf("Hint: %s", hint)

	classification, err := gw.ClassifyInput(ctx, "Você é o "+character+"?")
	require.NoError(t, err)
	t.Logf("Classification: %s", classification)
}
