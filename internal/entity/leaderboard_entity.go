package entity

import "github.com/google/uuid"

type LeaderboardEntry struct {
	Rank   int
	UserId uuid.UUID
	Score  int
}
