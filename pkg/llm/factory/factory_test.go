package factory

import (
	"testing"

	"guessing-game-be/internal/config"
	"guessing-game-be/pkg/llm/gemini"
	"guessing-game-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(config.AIConfig{LLMProvider: "ollama", LLMModel: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)

	p, err = NewLLMProvider(config.AIConfig{LLMProvider: "gemini", GeminiAPIKey: "k", LLMModel: "gemini-1.5-flash"})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	_, err = NewLLMProvider(config.AIConfig{LLMProvider: "gemini"})
	assert.Error(t, err)

	_, err = NewLLMProvider(config.AIConfig{LLMProvider: "gpt"})
	assert.ErrorContains(t, err, "unsupported")
}
