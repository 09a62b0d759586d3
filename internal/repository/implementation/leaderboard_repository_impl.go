package implementation

import (
	"context"
	"strings"

	"guessing-game-be/internal/entity"
	"guessing-game-be/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	leaderboardPrefix = "leaderboard:"
	leaderboardGlobal = leaderboardPrefix + "all"
)

type LeaderboardRepositoryImpl struct {
	rdb *redis.Client
}

func NewLeaderboardRepository(rdb *redis.Client) repository.LeaderboardRepository {
	return &LeaderboardRepositoryImpl{rdb: rdb}
}

// LeaderboardKey normalizes the theme so "Filmes" and " filmes " share a board.
func LeaderboardKey(theme string) string {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" {
		return leaderboardGlobal
	}
	return leaderboardPrefix + theme
}

func (r *LeaderboardRepositoryImpl) AddScore(ctx context.Context, theme string, userId uuid.UUID, score int) error {
	member := userId.String()
	pipe := r.rdb.TxPipeline()
	pipe.ZIncrBy(ctx, leaderboardGlobal, float64(score), member)
	if key := LeaderboardKey(theme); key != leaderboardGlobal {
		pipe.ZIncrBy(ctx, key, float64(score), member)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *LeaderboardRepositoryImpl) Top(ctx context.Context, theme string, limit int) ([]*entity.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.rdb.ZRevRangeWithScores(ctx, LeaderboardKey(theme), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		member, ok := row.Member.(string)
		if !ok {
			continue
		}
		userId, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		entries = append(entries, &entity.LeaderboardEntry{
			Rank:   len(entries) + 1,
			UserId: userId,
			Score:  int(row.Score),
		})
	}
	return entries, nil
}
