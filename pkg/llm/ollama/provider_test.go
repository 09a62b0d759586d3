package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"guessing-game-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Chat(t *testing.T) {
	var captured ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Role: "assistant", Content: "question"}, Done: true})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	out, err := p.Chat(context.Background(),
		[]llm.Message{{Role: llm.RoleSystem, Content: "classify"}, {Role: llm.RoleUser, Content: "É homem?"}},
		llm.WithTemperature(0), llm.WithMaxTokens(10),
	)
	require.NoError(t, err)
	assert.Equal(t, "question", out)

	assert.Equal(t, "llama3", captured.Model)
	require.NotNil(t, captured.Options.Temperature)
	assert.Equal(t, 0.0, *captured.Options.Temperature)
	assert.Equal(t, 10, captured.Options.NumPredict)
	assert.Len(t, captured.Messages, 2)
}

func TestOllamaProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "missing").Generate(context.Background(), "oi")
	assert.ErrorContains(t, err, "status 404")
}
