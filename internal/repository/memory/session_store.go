package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/game"
	"guessing-game-be/internal/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type sessionRecord struct {
	session  *entity.GameSession
	messages []*entity.ChatMessage
	nextSeq  int64
}

// SessionStore keeps sessions in process memory. Entries expire after the
// configured TTL of inactivity. Used by the simulator and tests, and when no
// database is configured.
type SessionStore struct {
	mu       sync.Mutex
	sessions *cache.Cache
	// message id -> session id
	messageIndex *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &SessionStore{
		sessions:     cache.New(ttl, 10*time.Minute),
		messageIndex: cache.New(ttl, 10*time.Minute),
	}
}

var _ store.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) record(sessionId string) (*sessionRecord, bool) {
	if x, found := s.sessions.Get(sessionId); found {
		return x.(*sessionRecord), true
	}
	return nil, false
}

func (s *SessionStore) touch(sessionId string, rec *sessionRecord) {
	s.sessions.Set(sessionId, rec, cache.DefaultExpiration)
}

func (s *SessionStore) CreateSession(ctx context.Context, session *entity.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.StartTime.IsZero() {
		session.StartTime = time.Now()
	}
	s.touch(session.SessionId, &sessionRecord{session: session.Clone(), nextSeq: 1})
	return nil
}

func (s *SessionStore) GetSession(ctx context.Context, sessionId string) (*entity.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.record(sessionId)
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	return rec.session.Clone(), nil
}

func (s *SessionStore) UpdateSession(ctx context.Context, session *entity.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.record(session.SessionId)
	if !ok {
		return game.ErrSessionNotFound
	}
	rec.session = session.Clone()
	s.touch(session.SessionId, rec)
	return nil
}

func (s *SessionStore) AppendMessage(ctx context.Context, sessionId string, sender game.Sender, text string) (*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.record(sessionId)
	if !ok {
		return nil, game.ErrSessionNotFound
	}

	message := &entity.ChatMessage{
		Id:            uuid.New(),
		GameSessionId: sessionId,
		Sender:        sender,
		Text:          text,
		Seq:           rec.nextSeq,
		CreatedAt:     time.Now(),
	}
	rec.nextSeq++
	rec.messages = append(rec.messages, message)
	s.touch(sessionId, rec)
	s.messageIndex.Set(message.Id.String(), sessionId, cache.DefaultExpiration)

	copied := *message
	return &copied, nil
}

func (s *SessionStore) DeleteMessage(ctx context.Context, messageId uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, found := s.messageIndex.Get(messageId.String())
	if !found {
		return nil
	}
	s.messageIndex.Delete(messageId.String())

	rec, ok := s.record(x.(string))
	if !ok {
		return nil
	}
	for i, m := range rec.messages {
		if m.Id == messageId {
			rec.messages = append(rec.messages[:i], rec.messages[i+1:]...)
			break
		}
	}
	return nil
}

func (s *SessionStore) ListMessages(ctx context.Context, sessionId string) ([]*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.record(sessionId)
	if !ok {
		return []*entity.ChatMessage{}, nil
	}
	out := make([]*entity.ChatMessage, len(rec.messages))
	for i, m := range rec.messages {
		copied := *m
		out[i] = &copied
	}
	return out, nil
}

func (s *SessionStore) CountUserMessages(ctx context.Context, sessionId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.record(sessionId)
	if !ok {
		return 0, nil
	}
	var count int64
	for _, m := range rec.messages {
		if m.Sender == game.SenderUser {
			count++
		}
	}
	return count, nil
}

func (s *SessionStore) RecentCharacterNames(ctx context.Context, userId uuid.UUID, theme, requestedLevel string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []*entity.GameSession
	for _, item := range s.sessions.Items() {
		session := item.Object.(*sessionRecord).session
		if session.UserId == nil || *session.UserId != userId {
			continue
		}
		if session.Theme != theme || session.RequestedLevel != requestedLevel || session.CharacterName == "" {
			continue
		}
		matches = append(matches, session)
	}

	sort.Slice(matches, func(i, j int) bool {
		return recency(matches[i]).After(recency(matches[j]))
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	names := make([]string, len(matches))
	for i, session := range matches {
		names[i] = session.CharacterName
	}
	return names, nil
}

func recency(s *entity.GameSession) time.Time {
	if s.EndTime != nil {
		return *s.EndTime
	}
	return s.StartTime
}
