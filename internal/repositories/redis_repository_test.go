package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	repository "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitTest(t *testing.T, now time.Time) (repository.RateLimitRepository, redismock.ClientMock, *config.Config) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.Config{RateConfig: config.RateConfig{MaxAttempts: 3, WindowSize: 10 * time.Minute}}

	return repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return now }), mock, cfg
}

func expectSubmissionPipeline(mock redismock.ClientMock, key string, now time.Time, window time.Duration, count int64) {
	mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now.Add(-window).UnixMilli())).SetVal(0)
	mock.ExpectZAdd(key, redis.Z{Score: float64(now.UnixMilli()), Member: now.UnixNano()}).SetVal(1)
	mock.ExpectZCard(key).SetVal(count)
	mock.ExpectExpire(key, window).SetVal(true)
}

func TestCheckSubmissionRateLimit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC)
	identifier := "email:ana@serraazul.com.br"
	key := "parts_request_submissions:" + identifier

	t.Run("Allowed", func(t *testing.T) {
		repo, mock, cfg := setupRateLimitTest(t, now)
		expectSubmissionPipeline(mock, key, now, cfg.RateConfig.WindowSize, 1)

		allowed, remaining, retryAfter, err := repo.CheckSubmissionRateLimit(ctx, identifier)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Last allowed attempt", func(t *testing.T) {
		repo, mock, cfg := setupRateLimitTest(t, now)
		expectSubmissionPipeline(mock, key, now, cfg.RateConfig.WindowSize, 3)

		allowed, remaining, _, err := repo.CheckSubmissionRateLimit(ctx, identifier)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, remaining)
	})

	t.Run("Blocked", func(t *testing.T) {
		repo, mock, cfg := setupRateLimitTest(t, now)
		expectSubmissionPipeline(mock, key, now, cfg.RateConfig.WindowSize, 4)

		oldest := now.Add(-4 * time.Minute)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(oldest.UnixMilli()), Member: fmt.Sprintf("%d", oldest.UnixNano())}})

		allowed, remaining, retryAfter, err := repo.CheckSubmissionRateLimit(ctx, identifier)

		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.Equal(t, 360, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Blocked with empty window", func(t *testing.T) {
		repo, mock, cfg := setupRateLimitTest(t, now)
		expectSubmissionPipeline(mock, key, now, cfg.RateConfig.WindowSize, 4)

		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).SetVal([]redis.Z{})

		allowed, _, retryAfter, err := repo.CheckSubmissionRateLimit(ctx, identifier)

		require.Error(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 600, retryAfter)
		assert.Contains(t, err.Error(), "no submissions found in rate limit window")
		assert.NotContains(t, err.Error(), "%!w")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Pipeline error", func(t *testing.T) {
		repo, mock, _ := setupRateLimitTest(t, now)
		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now.Add(-10*time.Minute).UnixMilli())).
			SetErr(errors.New("redis down"))

		allowed, _, _, err := repo.CheckSubmissionRateLimit(ctx, identifier)

		require.Error(t, err)
		assert.False(t, allowed)
		assert.Contains(t, err.Error(), "redis pipeline error for rate limit check")
	})
}
