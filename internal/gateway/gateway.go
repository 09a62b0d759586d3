package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"guessing-game-be/internal/constant"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/pkg/llm"
)

// Gateway is the game's view of the language model. Every method blocks and
// reports failures as game.ErrUpstreamUnavailable.
type Gateway interface {
	SelectCharacter(ctx context.Context, theme string, level game.Level, excluding []string) (string, error)
	// GenerateReply answers as the character. history is the session log in
	// order; an empty history asks for the opening hint.
	GenerateReply(ctx context.Context, instruction game.Instruction, history []game.Turn) (string, error)
	ClassifyInput(ctx context.Context, text string) (game.Classification, error)
}

// Call profiles.
const (
	chatTemperature           = 0.7
	selectionTemperature      = 0.1
	classificationTemperature = 0.0
	classificationMaxTokens   = 10
)

type llmGateway struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   logger.ILogger
}

func NewLLMGateway(provider llm.LLMProvider, timeout time.Duration, logger logger.ILogger) Gateway {
	return &llmGateway{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

func (g *llmGateway) call(ctx context.Context, op string, history []llm.Message, opts ...llm.Option) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := g.provider.Chat(ctx, history, opts...)
	if err != nil {
		g.logger.Warn("GATEWAY", "LLM call failed", map[string]interface{}{
			"op":          op,
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return "", fmt.Errorf("%s: %w: %v", op, game.ErrUpstreamUnavailable, err)
	}

	g.logger.Debug("GATEWAY", "LLM call completed", map[string]interface{}{
		"op":          op,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return out, nil
}

func (g *llmGateway) SelectCharacter(ctx context.Context, theme string, level game.Level, excluding []string) (string, error) {
	excluded := constant.NoExcludedCharacters
	if len(excluding) > 0 {
		excluded = strings.Join(excluding, ", ")
	}

	prompt := fmt.Sprintf(constant.CharacterSelectionPromptV1, theme, level, excluded)
	out, err := g.call(ctx, "select_character",
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		llm.WithTemperature(selectionTemperature),
	)
	if err != nil {
		return "", err
	}

	name := CleanCharacterName(out)
	if name == "" {
		return "", fmt.Errorf("select_character: %w: empty name", game.ErrUpstreamUnavailable)
	}
	return name, nil
}

func (g *llmGateway) GenerateReply(ctx context.Context, instruction game.Instruction, history []game.Turn) (string, error) {
	system := fmt.Sprintf(constant.CharacterPromptV1,
		instruction.Theme,
		instruction.Level,
		instruction.Character,
		instruction.AttemptsLeft,
	)

	// The conversation always opens with the hint request so the persisted
	// hint reads as the model's answer to it.
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages,
		llm.Message{Role: llm.RoleSystem, Content: system},
		llm.Message{Role: llm.RoleUser, Content: constant.InitialHintInput},
	)
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Sender == game.SenderAI {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Text})
	}

	out, err := g.call(ctx, "generate_reply", messages, llm.WithTemperature(chatTemperature))
	if err != nil {
		return "", err
	}
	reply := strings.TrimSpace(out)
	if reply == "" {
		return "", fmt.Errorf("generate_reply: %w: empty reply", game.ErrUpstreamUnavailable)
	}
	return reply, nil
}

func (g *llmGateway) ClassifyInput(ctx context.Context, text string) (game.Classification, error) {
	prompt := fmt.Sprintf(constant.ClassificationPromptV1, text)
	out, err := g.call(ctx, "classify_input",
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		llm.WithTemperature(classificationTemperature),
		llm.WithMaxTokens(classificationMaxTokens),
	)
	if err != nil {
		return "", err
	}
	return game.ParseClassification(out), nil
}

// CleanCharacterName strips quoting and trailing punctuation models tend to add.
func CleanCharacterName(raw string) string {
	name := strings.TrimSpace(raw)
	if first, _, found := strings.Cut(name, "\n"); found {
		name = first
	}
	name = strings.Trim(name, " \t'\"`*.")
	return strings.TrimSpace(name)
}
