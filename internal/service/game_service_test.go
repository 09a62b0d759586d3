package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"guessing-game-be/internal/dto"
	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/queue"
	"guessing-game-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	mu    sync.Mutex
	tasks []queue.Task
	err   error
}

func (q *recordingQueue) Enqueue(ctx context.Context, task queue.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *recordingQueue) Start(ctx context.Context, handler queue.Handler) error { return nil }
func (q *recordingQueue) Close() error                                           { return nil }

type fakeLeaderboard struct {
	mu     sync.Mutex
	scores map[string]map[uuid.UUID]int
	added  chan struct{}
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{scores: make(map[string]map[uuid.UUID]int), added: make(chan struct{}, 8)}
}

func (f *fakeLeaderboard) AddScore(ctx context.Context, theme string, userId uuid.UUID, score int) error {
	f.mu.Lock()
	if f.scores[theme] == nil {
		f.scores[theme] = make(map[uuid.UUID]int)
	}
	f.scores[theme][userId] += score
	f.mu.Unlock()
	f.added <- struct{}{}
	return nil
}

func (f *fakeLeaderboard) Top(ctx context.Context, theme string, limit int) ([]*entity.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.LeaderboardEntry
	for userId, score := range f.scores[theme] {
		out = append(out, &entity.LeaderboardEntry{Rank: len(out) + 1, UserId: userId, Score: score})
	}
	return out, nil
}

func newTestGameService(q *recordingQueue, lb *fakeLeaderboard) (IGameService, *memory.SessionStore) {
	sessionStore := memory.NewSessionStore(0)
	var svc IGameService
	if lb == nil {
		svc = NewGameService(sessionStore, q, nil, logger.NewNopLogger())
	} else {
		svc = NewGameService(sessionStore, q, lb, logger.NewNopLogger())
	}
	return svc, sessionStore
}

func TestGameService_NewGameCreatesOwnedSessionAndEnqueuesStart(t *testing.T) {
	q := &recordingQueue{}
	svc, sessionStore := newTestGameService(q, nil)
	userId := uuid.New()

	res, err := svc.NewGame(context.Background(), &userId, &dto.NewGameRequest{Theme: " Filmes ", Level: "Fácil"})
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionId)

	session, err := sessionStore.GetSession(context.Background(), res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, &userId, session.UserId)
	assert.Equal(t, "Filmes", session.Theme)
	assert.False(t, session.IsStarted())

	require.Len(t, q.tasks, 1)
	assert.Equal(t, queue.TaskStartGame, q.tasks[0].Kind)
	assert.Equal(t, res.SessionId, q.tasks[0].SessionId)
	assert.Equal(t, "Fácil", q.tasks[0].Level)
}

func TestGameService_NewGameSurfacesQueueFailure(t *testing.T) {
	q := &recordingQueue{err: queue.ErrQueueClosed}
	svc, _ := newTestGameService(q, nil)

	_, err := svc.NewGame(context.Background(), nil, &dto.NewGameRequest{Theme: "Filmes", Level: "Fácil"})
	assert.ErrorIs(t, err, queue.ErrQueueClosed)
}

func TestGameService_SendMessage(t *testing.T) {
	q := &recordingQueue{}
	svc, sessionStore := newTestGameService(q, nil)
	owner := uuid.New()
	require.NoError(t, sessionStore.CreateSession(context.Background(), &entity.GameSession{SessionId: "s1", UserId: &owner}))

	_, err := svc.SendMessage(context.Background(), &owner, &dto.SendMessageRequest{SessionId: "missing", Message: "oi"})
	assert.ErrorIs(t, err, game.ErrSessionNotFound)

	stranger := uuid.New()
	_, err = svc.SendMessage(context.Background(), &stranger, &dto.SendMessageRequest{SessionId: "s1", Message: "oi"})
	assert.ErrorIs(t, err, game.ErrForbidden)

	res, err := svc.SendMessage(context.Background(), &owner, &dto.SendMessageRequest{SessionId: "s1", Message: "É o Mario?"})
	require.NoError(t, err)
	assert.True(t, res.Queued)
	require.Len(t, q.tasks, 1)
	assert.Equal(t, queue.TaskPlayerMessage, q.tasks[0].Kind)
	assert.Equal(t, "É o Mario?", q.tasks[0].Text)
}

func TestGameService_ShowHidesCharacterUntilCompleted(t *testing.T) {
	svc, sessionStore := newTestGameService(&recordingQueue{}, nil)
	ctx := context.Background()
	session := &entity.GameSession{
		SessionId:     "s1",
		Theme:         "Filmes",
		Level:         game.LevelHard,
		CharacterName: "Darth Vader",
		MaxAttempts:   5,
		AttemptsLeft:  3,
	}
	require.NoError(t, sessionStore.CreateSession(ctx, session))

	res, err := svc.Show(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, res.CharacterName)
	assert.True(t, res.IsStarted)
	assert.Equal(t, 3, res.AttemptsLeft)

	session.IsCompleted = true
	require.NoError(t, sessionStore.UpdateSession(ctx, session))
	res, err = svc.Show(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, res.CharacterName)
	assert.Equal(t, "Darth Vader", *res.CharacterName)
}

func TestGameService_History(t *testing.T) {
	svc, sessionStore := newTestGameService(&recordingQueue{}, nil)
	ctx := context.Background()
	require.NoError(t, sessionStore.CreateSession(ctx, &entity.GameSession{SessionId: "s1"}))
	_, err := sessionStore.AppendMessage(ctx, "s1", game.SenderAI, "Dica")
	require.NoError(t, err)
	_, err = sessionStore.AppendMessage(ctx, "s1", game.SenderUser, "Pergunta")
	require.NoError(t, err)

	res, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "ai", res[0].Sender)
	assert.Equal(t, "Pergunta", res[1].Message)
	assert.Less(t, res[0].Seq, res[1].Seq)

	_, err = svc.History(ctx, "missing")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestGameService_LeaderboardUnavailableWithoutRepository(t *testing.T) {
	svc, _ := newTestGameService(&recordingQueue{}, nil)

	_, err := svc.Leaderboard(context.Background(), "", 10)
	assert.True(t, errors.Is(err, ErrLeaderboardUnavailable))
}

func TestCompletedGamesReachLeaderboard(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	lb := newFakeLeaderboard()
	log := logger.NewNopLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewConsumerService(pubSub, GameCompletedTopic, lb, log).Consume(ctx))

	publisher := NewPublisherService(GameCompletedTopic, pubSub, log)
	userId := uuid.New()
	publisher.OnGameCompleted(ctx, game.Result{SessionId: "anon", Theme: "Filmes", Score: 50})
	publisher.OnGameCompleted(ctx, game.Result{SessionId: "s1", UserId: &userId, Theme: "Filmes", Score: 85, EndTime: time.Now()})

	select {
	case <-lb.added:
	case <-time.After(2 * time.Second):
		t.Fatal("score was not recorded")
	}

	svc, _ := newTestGameService(&recordingQueue{}, lb)
	res, err := svc.Leaderboard(ctx, "Filmes", 10)
	require.NoError(t, err)
	require.Len(t, res, 1, "anonymous games are not ranked")
	assert.Equal(t, userId, res[0].UserId)
	assert.Equal(t, 85, res[0].Score)
}
