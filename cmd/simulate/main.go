// Command simulate plays one game in-process and prints the broadcast stream.
// By default the model is scripted; -live uses the configured LLM provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"guessing-game-be/internal/config"
	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/gateway"
	"guessing-game-be/internal/orchestrator"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/queue"
	"guessing-game-be/internal/repository/memory"
	"guessing-game-be/pkg/events"
	"guessing-game-be/pkg/llm/factory"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// scriptedGateway answers every guess wrong except one naming the character.
type scriptedGateway struct {
	character string
}

func (g scriptedGateway) SelectCharacter(ctx context.Context, theme string, level game.Level, excluding []string) (string, error) {
	return g.character, nil
}

func (g scriptedGateway) GenerateReply(ctx context.Context, instruction game.Instruction, history []game.Turn) (string, error) {
	if len(history) == 0 {
		return "Sou pequeno, amarelo e solto raios pelas bochechas.", nil
	}
	last := strings.ToLower(history[len(history)-1].Text)
	if strings.Contains(last, strings.ToLower(g.character)) {
		return game.WinMarker + g.character + ".", nil
	}
	if strings.HasPrefix(last, "você é") || strings.HasPrefix(last, "é o") {
		return fmt.Sprintf("Não sou esse. Restam %d tentativas.", instruction.AttemptsLeft), nil
	}
	return "Hmm, talvez. Pense em criaturas de bolso.", nil
}

func (g scriptedGateway) ClassifyInput(ctx context.Context, text string) (game.Classification, error) {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "você é") || strings.HasPrefix(lower, "é o") {
		return game.ClassificationGuess, nil
	}
	return game.ClassificationQuestion, nil
}

type consoleBus struct {
	done chan struct{}
}

func (b *consoleBus) Publish(ctx context.Context, groupId string, event events.Event) {
	data := event.Payload()
	switch event.EventType() {
	case game.EventChatMessage:
		if data["sender"] == string(game.SenderUser) {
			color.Cyan("VOCÊ: %v", data["message"])
		} else {
			color.Green("IA:   %v", data["message"])
		}
	case game.EventUpdateAttempts:
		color.Yellow("      tentativas restantes: %v", data["attempts_left"])
	case game.EventGameOver:
		color.Magenta("FIM:  %v (pontuação %v) %v", data["message"], data["score"], data["character_image_url"])
		close(b.done)
	case game.EventError:
		color.Red("ERRO: %v", data["message"])
	default:
		fmt.Printf("%s: %v\n", event.EventType(), data)
	}
}

func main() {
	live := flag.Bool("live", false, "use the configured LLM provider instead of the script")
	theme := flag.String("theme", "Pokémon", "game theme")
	level := flag.String("level", "Fácil", "game level")
	flag.Parse()

	log := logger.NewNopLogger()
	var gw gateway.Gateway = scriptedGateway{character: "Pikachu"}
	if *live {
		cfg := config.Load()
		provider, err := factory.NewLLMProvider(cfg.Ai)
		if err != nil {
			color.Red("LLM provider: %v", err)
			os.Exit(1)
		}
		gw = gateway.NewLLMGateway(provider, cfg.Game.GatewayTimeout, log)
	}

	sessionStore := memory.NewSessionStore(0)
	bus := &consoleBus{done: make(chan struct{})}
	orch := orchestrator.New(orchestrator.Deps{
		Store:   sessionStore,
		Gateway: gw,
		Bus:     bus,
		Logger:  log,
	}, orchestrator.Options{})

	ctx := context.Background()
	userId := uuid.New()
	sessionId := uuid.NewString()
	if err := sessionStore.CreateSession(ctx, &entity.GameSession{
		SessionId:      sessionId,
		UserId:         &userId,
		Theme:          *theme,
		RequestedLevel: *level,
	}); err != nil {
		color.Red("create session: %v", err)
		os.Exit(1)
	}

	q := queue.NewMemoryQueue(4, 16, log)
	if err := q.Start(ctx, orch.HandleTask); err != nil {
		color.Red("start queue: %v", err)
		os.Exit(1)
	}

	color.Cyan("🎲 Sessão %s (%s, %s)", sessionId, *theme, *level)
	moves := []string{
		"Você sabe voar?",
		"Você é o Charmander?",
		"Você é o Pikachu?",
	}
	q.Enqueue(ctx, queue.NewStartGameTask(sessionId, &userId, *theme, *level))
	for _, move := range moves {
		q.Enqueue(ctx, queue.NewPlayerMessageTask(sessionId, &userId, move))
	}

	select {
	case <-bus.done:
	case <-time.After(2 * time.Minute):
		color.Red("timed out waiting for the game to end")
	}
	q.Close()
}
