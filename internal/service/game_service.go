package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"guessing-game-be/internal/dto"
	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/queue"
	"guessing-game-be/internal/repository"
	"guessing-game-be/internal/store"

	"github.com/google/uuid"
)

var ErrLeaderboardUnavailable = errors.New("leaderboard is not configured")

type IGameService interface {
	NewGame(ctx context.Context, userId *uuid.UUID, req *dto.NewGameRequest) (*dto.NewGameResponse, error)
	SendMessage(ctx context.Context, userId *uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	Show(ctx context.Context, sessionId string) (*dto.GameSessionResponse, error)
	History(ctx context.Context, sessionId string) ([]*dto.GameMessageResponse, error)
	Leaderboard(ctx context.Context, theme string, limit int) ([]*dto.LeaderboardEntryResponse, error)
}

// gameService is the request side of the game. It records sessions and hands
// every trigger to the queue; the orchestrator does the rest and reports
// through the session's broadcast group.
type gameService struct {
	store       store.SessionStore
	queue       queue.Queue
	leaderboard repository.LeaderboardRepository
	logger      logger.ILogger
}

func NewGameService(
	sessionStore store.SessionStore,
	taskQueue queue.Queue,
	leaderboard repository.LeaderboardRepository,
	log logger.ILogger,
) IGameService {
	return &gameService{
		store:       sessionStore,
		queue:       taskQueue,
		leaderboard: leaderboard,
		logger:      log,
	}
}

func (s *gameService) NewGame(ctx context.Context, userId *uuid.UUID, req *dto.NewGameRequest) (*dto.NewGameResponse, error) {
	session := &entity.GameSession{
		SessionId:      uuid.NewString(),
		UserId:         userId,
		Theme:          strings.TrimSpace(req.Theme),
		RequestedLevel: strings.TrimSpace(req.Level),
		StartTime:      time.Now(),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	task := queue.NewStartGameTask(session.SessionId, userId, session.Theme, session.RequestedLevel)
	if err := s.queue.Enqueue(ctx, task); err != nil {
		s.logger.Error("GAME_SERVICE", "Failed to enqueue start", map[string]interface{}{"session_id": session.SessionId, "error": err.Error()})
		return nil, err
	}

	s.logger.Info("GAME_SERVICE", "Game session created", map[string]interface{}{
		"session_id": session.SessionId,
		"theme":      session.Theme,
		"level":      session.RequestedLevel,
	})
	return &dto.NewGameResponse{SessionId: session.SessionId}, nil
}

// SendMessage rejects unknown sessions and foreign players up front so the
// caller gets an HTTP status; every other rule is enforced when the task runs.
func (s *gameService) SendMessage(ctx context.Context, userId *uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session, err := s.store.GetSession(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if !session.CanBeDrivenBy(userId) {
		return nil, game.ErrForbidden
	}

	if err := s.queue.Enqueue(ctx, queue.NewPlayerMessageTask(req.SessionId, userId, req.Message)); err != nil {
		return nil, err
	}
	return &dto.SendMessageResponse{SessionId: req.SessionId, Queued: true}, nil
}

func (s *gameService) Show(ctx context.Context, sessionId string) (*dto.GameSessionResponse, error) {
	session, err := s.store.GetSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	res := &dto.GameSessionResponse{
		SessionId:    session.SessionId,
		Theme:        session.Theme,
		Level:        string(session.Level),
		MaxAttempts:  session.MaxAttempts,
		AttemptsLeft: session.AttemptsLeft,
		IsStarted:    session.IsStarted(),
		IsCompleted:  session.IsCompleted,
		Score:        session.Score,
		StartTime:    session.StartTime,
		EndTime:      session.EndTime,
	}
	if res.Level == "" {
		res.Level = session.RequestedLevel
	}
	if session.IsCompleted {
		name := session.CharacterName
		res.CharacterName = &name
	}
	return res, nil
}

func (s *gameService) History(ctx context.Context, sessionId string) ([]*dto.GameMessageResponse, error) {
	if _, err := s.store.GetSession(ctx, sessionId); err != nil {
		return nil, err
	}
	messages, err := s.store.ListMessages(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GameMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, &dto.GameMessageResponse{
			Id:        m.Id,
			Sender:    string(m.Sender),
			Message:   m.Text,
			Seq:       m.Seq,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

func (s *gameService) Leaderboard(ctx context.Context, theme string, limit int) ([]*dto.LeaderboardEntryResponse, error) {
	if s.leaderboard == nil {
		return nil, ErrLeaderboardUnavailable
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := s.leaderboard.Top(ctx, theme, limit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, &dto.LeaderboardEntryResponse{Rank: e.Rank, UserId: e.UserId, Score: e.Score})
	}
	return res, nil
}
