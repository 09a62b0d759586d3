package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"guessing-game-be/internal/constant"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	history []llm.Message
	options llm.Options
}

type fakeProvider struct {
	reply string
	err   error
	delay time.Duration
	calls []recordedCall
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls = append(f.calls, recordedCall{history: history, options: llm.Apply(llm.Options{}, opts...)})
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func newGateway(p llm.LLMProvider, timeout time.Duration) Gateway {
	return NewLLMGateway(p, timeout, logger.NewNopLogger())
}

func TestSelectCharacter(t *testing.T) {
	p := &fakeProvider{reply: " 'Darth Vader'.\n"}
	name, err := newGateway(p, time.Second).SelectCharacter(context.Background(), "Filmes", game.LevelEasy, []string{"Yoda", "Neo"})
	require.NoError(t, err)
	assert.Equal(t, "Darth Vader", name)

	require.Len(t, p.calls, 1)
	assert.Contains(t, p.calls[0].history[0].Content, "Yoda, Neo")
	assert.Equal(t, 0.1, *p.calls[0].options.Temperature)
}

func TestSelectCharacterEmpty(t *testing.T) {
	_, err := newGateway(&fakeProvider{reply: "  \"\" "}, time.Second).SelectCharacter(context.Background(), "Filmes", game.LevelEasy, nil)
	assert.ErrorIs(t, err, game.ErrUpstreamUnavailable)
}

func TestGenerateReplyBuildsConversation(t *testing.T) {
	p := &fakeProvider{reply: "Não, não sou eu."}
	instruction := game.Instruction{Theme: "Filmes", Level: game.LevelHard, Character: "Darth Vader", AttemptsLeft: 4}
	history := []game.Turn{
		{Sender: game.SenderAI, Text: "Em uma galáxia distante..."},
		{Sender: game.SenderUser, Text: "É o Luke?"},
	}

	reply, err := newGateway(p, time.Second).GenerateReply(context.Background(), instruction, history)
	require.NoError(t, err)
	assert.Equal(t, "Não, não sou eu.", reply)

	msgs := p.calls[0].history
	require.Len(t, msgs, 4)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Darth Vader")
	assert.Contains(t, msgs[0].Content, "TENTATIVAS RESTANTES: 4")
	assert.Equal(t, constant.InitialHintInput, msgs[1].Content)
	assert.Equal(t, llm.RoleAssistant, msgs[2].Role)
	assert.Equal(t, llm.RoleUser, msgs[3].Role)
	assert.Equal(t, 0.7, *p.calls[0].options.Temperature)
}

func TestClassifyInput(t *testing.T) {
	p := &fakeProvider{reply: "Guess"}
	c, err := newGateway(p, time.Second).ClassifyInput(context.Background(), "É o Batman?")
	require.NoError(t, err)
	assert.Equal(t, game.ClassificationGuess, c)
	assert.Equal(t, 0.0, *p.calls[0].options.Temperature)
	assert.Equal(t, 10, p.calls[0].options.MaxTokens)
}

func TestProviderFailureIsUpstreamUnavailable(t *testing.T) {
	gw := newGateway(&fakeProvider{err: errors.New("connection refused")}, time.Second)

	_, err := gw.ClassifyInput(context.Background(), "x")
	assert.ErrorIs(t, err, game.ErrUpstreamUnavailable)
	_, err = gw.GenerateReply(context.Background(), game.Instruction{}, nil)
	assert.ErrorIs(t, err, game.ErrUpstreamUnavailable)
}

func TestTimeoutIsUpstreamUnavailable(t *testing.T) {
	gw := newGateway(&fakeProvider{reply: "late", delay: time.Second}, 20*time.Millisecond)
	_, err := gw.GenerateReply(context.Background(), game.Instruction{}, nil)
	assert.ErrorIs(t, err, game.ErrUpstreamUnavailable)
}
