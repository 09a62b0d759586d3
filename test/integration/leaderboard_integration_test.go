package integration

import (
	"context"
	"os"
	"testing"

	"guessing-game-be/internal/repository/implementation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLeaderboard(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	theme := "integration-" + uuid.NewString()[:8]
	t.Cleanup(func() { rdb.Del(ctx, implementation.LeaderboardKey(theme)) })

	repo := implementation.NewLeaderboardRepository(rdb)
	alice, bob := uuid.New(), uuid.New()
	require.NoError(t, repo.AddScore(ctx, theme, alice, 60))
	require.NoError(t, repo.AddScore(ctx, theme, bob, 90))
	require.NoError(t, repo.AddScore(ctx, theme, alice, 50))

	top, err := repo.Top(ctx, theme, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, alice, top[0].UserId)
	assert.Equal(t, 110, top[0].Score)
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, bob, top[1].UserId)

	// the global board also saw the scores
	t.Cleanup(func() {
		rdb.ZRem(ctx, implementation.LeaderboardKey(""), alice.String(), bob.String())
	})
	global, err := rdb.ZScore(ctx, implementation.LeaderboardKey(""), alice.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(110), global)
}
