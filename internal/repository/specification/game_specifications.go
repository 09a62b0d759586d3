package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByGameSessionID struct {
	GameSessionID string
}

func (s ByGameSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("game_session_id = ?", s.GameSessionID)
}

type BySender struct {
	Sender string
}

func (s BySender) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender = ?", s.Sender)
}

// ByUserID matches sessions owned by the user. A nil id matches unowned ones.
type ByUserID struct {
	UserID *uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	if s.UserID == nil {
		return db.Where("user_id IS NULL")
	}
	return db.Where("user_id = ?", *s.UserID)
}
