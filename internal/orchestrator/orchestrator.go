package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guessing-game-be/internal/constant"
	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/gateway"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/queue"
	"guessing-game-be/internal/store"
	"guessing-game-be/pkg/events"
	"guessing-game-be/pkg/imagesearch"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const module = "ORCHESTRATOR"

// Broadcaster delivers events to everyone watching a session.
type Broadcaster interface {
	Publish(ctx context.Context, groupId string, event events.Event)
}

// CompletionListener is told about every finished game, after the final
// state is persisted and game_over is published.
type CompletionListener interface {
	OnGameCompleted(ctx context.Context, result game.Result)
}

type Deps struct {
	Store      store.SessionStore
	Gateway    gateway.Gateway
	Bus        Broadcaster
	Images     imagesearch.Finder
	Completion CompletionListener
	Logger     logger.ILogger
}

type Options struct {
	RecentCharacterLimit int
	ImageLookupTimeout   time.Duration
	// Pick chooses the concrete level for Random. Defaults to math/rand.
	Pick game.PickFunc
}

type StartGameCommand struct {
	SessionId string
	Theme     string
	Level     string
	UserId    *uuid.UUID
}

type PlayerMessageCommand struct {
	SessionId string
	Text      string
	UserId    *uuid.UUID
}

// Orchestrator drives a session through its lifecycle. Callers must not run
// two triggers for the same session concurrently; the task queue guarantees
// that.
type Orchestrator struct {
	store      store.SessionStore
	gateway    gateway.Gateway
	bus        Broadcaster
	images     imagesearch.Finder
	completion CompletionListener
	logger     logger.ILogger
	tracer     trace.Tracer
	opts       Options
}

func New(deps Deps, opts Options) *Orchestrator {
	if opts.RecentCharacterLimit <= 0 {
		opts.RecentCharacterLimit = 100
	}
	if opts.ImageLookupTimeout <= 0 {
		opts.ImageLookupTimeout = 5 * time.Second
	}
	return &Orchestrator{
		store:      deps.Store,
		gateway:    deps.Gateway,
		bus:        deps.Bus,
		images:     deps.Images,
		completion: deps.Completion,
		logger:     deps.Logger,
		tracer:     otel.Tracer("guessing-game-be/orchestrator"),
		opts:       opts,
	}
}

// HandleTask is the queue handler. Game outcomes (not found, forbidden,
// upstream failure) are reported to the session and swallowed; only
// infrastructure failures are returned so the queue can redeliver.
func (o *Orchestrator) HandleTask(ctx context.Context, task queue.Task) error {
	var err error
	switch task.Kind {
	case queue.TaskStartGame:
		err = o.StartGame(ctx, StartGameCommand{
			SessionId: task.SessionId,
			Theme:     task.Theme,
			Level:     task.Level,
			UserId:    task.UserId,
		})
	case queue.TaskPlayerMessage:
		err = o.HandlePlayerMessage(ctx, PlayerMessageCommand{
			SessionId: task.SessionId,
			Text:      task.Text,
			UserId:    task.UserId,
		})
	default:
		o.logger.Error(module, "Unknown task kind", map[string]interface{}{"task_id": task.Id, "kind": task.Kind})
		return nil
	}

	if err == nil || game.IsDomainError(err) {
		return nil
	}
	return err
}

func (o *Orchestrator) publish(ctx context.Context, sessionId string, event events.Event) {
	o.bus.Publish(ctx, sessionId, event)
}

func (o *Orchestrator) startSpan(ctx context.Context, name, sessionId string) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("game.session_id", sessionId)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// loadSession reports a missing session to its group.
func (o *Orchestrator) loadSession(ctx context.Context, sessionId string) (*entity.GameSession, error) {
	session, err := o.store.GetSession(ctx, sessionId)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, game.ErrSessionNotFound) {
		o.logger.Warn(module, "Game session not found", map[string]interface{}{"session_id": sessionId})
		o.publish(ctx, sessionId, game.ErrorEvent(constant.MsgSessionNotFound))
		return nil, err
	}
	o.publish(ctx, sessionId, game.ErrorEvent(constant.MsgInternalError))
	return nil, err
}

func resolveRequestedLevel(raw string) game.Level {
	level, err := game.ParseLevel(raw)
	if err != nil {
		return game.Level(strings.TrimSpace(raw))
	}
	return level
}

func (o *Orchestrator) StartGame(ctx context.Context, cmd StartGameCommand) (err error) {
	ctx, span := o.startSpan(ctx, "orchestrator.StartGame", cmd.SessionId)
	defer func() { endSpan(span, err) }()

	session, err := o.loadSession(ctx, cmd.SessionId)
	if err != nil {
		return err
	}

	if session.IsCompleted || session.IsStarted() {
		o.publish(ctx, session.SessionId, game.ErrorEvent(constant.MsgAlreadyStarted))
		return game.ErrGameAlreadyStarted
	}
	if !session.CanBeDrivenBy(cmd.UserId) {
		o.publish(ctx, session.SessionId, game.ErrorEvent(constant.MsgForbidden))
		return game.ErrForbidden
	}

	theme := cmd.Theme
	if theme == "" {
		theme = session.Theme
	}
	requestedLevel := cmd.Level
	if requestedLevel == "" {
		requestedLevel = session.RequestedLevel
	}

	level := game.ResolveLevel(resolveRequestedLevel(requestedLevel), o.opts.Pick)
	maxAttempts := game.MaxAttemptsFor(level)
	span.SetAttributes(attribute.String("game.level", string(level)))

	owner := session.UserId
	if owner == nil {
		owner = cmd.UserId
	}

	var prior []string
	if owner != nil {
		recent, recentErr := o.store.RecentCharacterNames(ctx, *owner, theme, requestedLevel, o.opts.RecentCharacterLimit)
		if recentErr != nil {
			o.logger.Warn(module, "Could not load recent characters", map[string]interface{}{"session_id": session.SessionId, "error": recentErr.Error()})
		}
		prior = recent
	}

	character, err := o.gateway.SelectCharacter(ctx, theme, level, prior)
	if err != nil {
		return o.failStart(ctx, session.SessionId, err)
	}

	hint, err := o.gateway.GenerateReply(ctx, game.Instruction{
		Theme:        theme,
		Level:        level,
		Character:    character,
		AttemptsLeft: maxAttempts,
	}, nil)
	if err != nil {
		return o.failStart(ctx, session.SessionId, err)
	}

	hintMessage, err := o.store.AppendMessage(ctx, session.SessionId, game.SenderAI, hint)
	if err != nil {
		return o.failStart(ctx, session.SessionId, err)
	}

	session.UserId = owner
	session.Theme = theme
	session.RequestedLevel = requestedLevel
	session.Level = level
	session.CharacterName = character
	session.MaxAttempts = maxAttempts
	session.AttemptsLeft = maxAttempts
	session.ExcludedCharacters = prior
	if err = o.store.UpdateSession(ctx, session); err != nil {
		o.deleteMessage(ctx, hintMessage)
		return o.failStart(ctx, session.SessionId, err)
	}

	o.logger.Info(module, "Game started", map[string]interface{}{
		"session_id":   session.SessionId,
		"level":        level,
		"max_attempts": maxAttempts,
		"excluded":     len(prior),
	})

	o.publish(ctx, session.SessionId, game.ChatMessageEvent(game.SenderAI, hint))
	o.publish(ctx, session.SessionId, game.UpdateAttemptsEvent(maxAttempts))
	return nil
}

func (o *Orchestrator) failStart(ctx context.Context, sessionId string, err error) error {
	o.logger.Error(module, "Failed to start game", map[string]interface{}{"session_id": sessionId, "error": err.Error()})
	o.publish(ctx, sessionId, game.ErrorEvent(fmt.Sprintf(constant.MsgStartFailed, failureReason(err))))
	return err
}

func failureReason(err error) string {
	if errors.Is(err, game.ErrUpstreamUnavailable) {
		return "serviço de IA indisponível"
	}
	return "falha interna"
}

func (o *Orchestrator) HandlePlayerMessage(ctx context.Context, cmd PlayerMessageCommand) (err error) {
	ctx, span := o.startSpan(ctx, "orchestrator.PlayerMessage", cmd.SessionId)
	defer func() { endSpan(span, err) }()

	session, err := o.loadSession(ctx, cmd.SessionId)
	if err != nil {
		return err
	}

	if !session.CanBeDrivenBy(cmd.UserId) {
		o.logger.Warn(module, "Message from non-owner rejected", map[string]interface{}{"session_id": session.SessionId})
		o.publish(ctx, session.SessionId, game.ErrorEvent(constant.MsgForbidden))
		return game.ErrForbidden
	}
	if session.IsCompleted {
		o.publish(ctx, session.SessionId, game.ErrorEvent(constant.MsgSessionCompleted))
		return game.ErrSessionCompleted
	}
	if !session.IsStarted() {
		o.publish(ctx, session.SessionId, game.ErrorEvent(constant.MsgGameNotStarted))
		return game.ErrGameNotStarted
	}

	userMessage, err := o.store.AppendMessage(ctx, session.SessionId, game.SenderUser, cmd.Text)
	if err != nil {
		o.publish(ctx, session.SessionId, game.ErrorEvent(constant.MsgInternalError))
		return err
	}
	o.publish(ctx, session.SessionId, game.ChatMessageEvent(game.SenderUser, cmd.Text))

	turn := &turnState{session: session, userMessage: userMessage, attemptsBefore: session.AttemptsLeft}

	classification, err := o.gateway.ClassifyInput(ctx, cmd.Text)
	if err != nil {
		return o.rollbackTurn(ctx, turn, err)
	}
	wasGuess := classification == game.ClassificationGuess
	span.SetAttributes(attribute.String("game.classification", string(classification)))

	if delta := game.DecideAttemptDelta(classification); delta != 0 {
		session.AttemptsLeft = game.ApplyAttemptDelta(session.AttemptsLeft, delta)
		if err = o.store.UpdateSession(ctx, session); err != nil {
			session.AttemptsLeft = turn.attemptsBefore
			return o.rollbackTurn(ctx, turn, err)
		}
		turn.decremented = true
		o.publish(ctx, session.SessionId, game.UpdateAttemptsEvent(session.AttemptsLeft))
	}

	history, err := o.store.ListMessages(ctx, session.SessionId)
	if err != nil {
		return o.rollbackTurn(ctx, turn, err)
	}

	reply, err := o.gateway.GenerateReply(ctx, game.Instruction{
		Theme:        session.Theme,
		Level:        session.Level,
		Character:    session.CharacterName,
		AttemptsLeft: session.AttemptsLeft,
	}, toTurns(history))
	if err != nil {
		return o.rollbackTurn(ctx, turn, err)
	}

	if _, err = o.store.AppendMessage(ctx, session.SessionId, game.SenderAI, reply); err != nil {
		return o.rollbackTurn(ctx, turn, err)
	}
	o.publish(ctx, session.SessionId, game.ChatMessageEvent(game.SenderAI, reply))

	outcome := game.DecideCompletion(reply, session.AttemptsLeft, wasGuess)
	if outcome.Kind != game.OutcomeNone {
		o.complete(ctx, session, outcome)
	}
	return nil
}

type turnState struct {
	session        *entity.GameSession
	userMessage    *entity.ChatMessage
	attemptsBefore int
	decremented    bool
}

// rollbackTurn undoes what a failed turn persisted so the player can resend
// the same message. Runs detached from ctx so a timeout does not skip it.
func (o *Orchestrator) rollbackTurn(ctx context.Context, turn *turnState, cause error) error {
	sessionId := turn.session.SessionId
	cleanupCtx := context.WithoutCancel(ctx)

	o.logger.Error(module, "Turn failed, rolling back", map[string]interface{}{
		"session_id": sessionId,
		"error":      cause.Error(),
	})

	o.deleteMessage(cleanupCtx, turn.userMessage)

	if turn.decremented {
		turn.session.AttemptsLeft = turn.attemptsBefore
		if err := o.store.UpdateSession(cleanupCtx, turn.session); err != nil {
			o.logger.Error(module, "Failed to restore attempts", map[string]interface{}{"session_id": sessionId, "error": err.Error()})
		}
	}

	o.publish(cleanupCtx, sessionId, game.ErrorEvent(fmt.Sprintf(constant.MsgReplyFailed, failureReason(cause))))
	if turn.decremented {
		o.publish(cleanupCtx, sessionId, game.UpdateAttemptsEvent(turn.attemptsBefore))
	}
	return cause
}

func (o *Orchestrator) deleteMessage(ctx context.Context, message *entity.ChatMessage) {
	if message == nil {
		return
	}
	if err := o.store.DeleteMessage(context.WithoutCancel(ctx), message.Id); err != nil {
		o.logger.Error(module, "Failed to delete message", map[string]interface{}{
			"session_id": message.GameSessionId,
			"message_id": message.Id,
			"error":      err.Error(),
		})
	}
}

// complete finalizes the session. The turn itself is already persisted and
// published, so a failure here is reported but never retried: replaying the
// turn would duplicate it.
func (o *Orchestrator) complete(ctx context.Context, session *entity.GameSession, outcome game.Outcome) {
	userMessages, err := o.store.CountUserMessages(ctx, session.SessionId)
	if err == nil {
		now := time.Now()
		session.IsCompleted = true
		session.Score = game.CalculateScore(userMessages)
		session.EndTime = &now
		err = o.store.UpdateSession(ctx, session)
	}
	if err != nil {
		o.logger.Error(module, "Failed to persist completion", map[string]interface{}{"session_id": session.SessionId, "error": err.Error()})
		o.publish(ctx, session.SessionId, game.ErrorEvent(constant.MsgInternalError))
		return
	}

	name := game.RevealedName(outcome, session.CharacterName)
	var message string
	if outcome.Kind == game.OutcomeWon {
		message = fmt.Sprintf(constant.MsgWon, name)
	} else {
		message = fmt.Sprintf(constant.MsgExhausted, name)
	}

	imageURL := o.lookupImage(ctx, session.SessionId, name)

	o.logger.Info(module, "Game completed", map[string]interface{}{
		"session_id": session.SessionId,
		"outcome":    outcome.Kind.String(),
		"score":      session.Score,
	})
	o.publish(ctx, session.SessionId, game.GameOverEvent(message, session.Score, name, imageURL))

	if o.completion != nil {
		o.completion.OnGameCompleted(ctx, game.Result{
			SessionId:     session.SessionId,
			UserId:        session.UserId,
			Theme:         session.Theme,
			Level:         session.Level,
			CharacterName: name,
			Outcome:       outcome.Kind.String(),
			Score:         session.Score,
			EndTime:       *session.EndTime,
		})
	}
}

// lookupImage never fails the game; any error yields an empty URL.
func (o *Orchestrator) lookupImage(ctx context.Context, sessionId, name string) string {
	if o.images == nil || name == game.UnknownCharacter {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, o.opts.ImageLookupTimeout)
	defer cancel()

	url, err := o.images.FindImageURL(ctx, name)
	if err != nil {
		o.logger.Warn(module, "Character image lookup failed", map[string]interface{}{"session_id": sessionId, "error": err.Error()})
		return ""
	}
	return url
}

func toTurns(messages []*entity.ChatMessage) []game.Turn {
	turns := make([]game.Turn, len(messages))
	for i, m := range messages {
		turns[i] = game.Turn{Sender: m.Sender, Text: m.Text}
	}
	return turns
}
